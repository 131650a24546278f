// Package agent orchestrates repository data fetching and LLM processing
// for the summary and guided-tour pipelines.
package agent

import (
	"context"
	"log/slog"

	"github.com/repotour/repotour/internal/classify"
	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/llm"
	"github.com/repotour/repotour/internal/llm/prompts"
	"github.com/repotour/repotour/internal/models"
	"github.com/repotour/repotour/internal/output"
	"github.com/repotour/repotour/internal/tree"
)

// readmeMissingPlaceholder keeps the pipeline going when the repository
// has no README.
const readmeMissingPlaceholder = "README.md not found in repository."

// RepoSource supplies README content and directory listings for a
// repository. Implemented by the GitHub client.
type RepoSource interface {
	GetReadme(ctx context.Context, owner, name string) (string, error)
	ListChildren(ctx context.Context, owner, name, path string) ([]models.ChildInfo, error)
}

// Completer produces a completion for a prompt pair. Implemented by the
// LLM client.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Pipeline wires a repository source and a completion backend together.
// All tunables arrive explicitly; the pipeline never reads the process
// environment.
type Pipeline struct {
	source    RepoSource
	completer Completer
	traversal config.TraversalConfig
	limits    config.LimitsConfig
	logger    *slog.Logger
}

// New creates a pipeline over the given collaborators.
func New(source RepoSource, completer Completer, traversal config.TraversalConfig, limits config.LimitsConfig) *Pipeline {
	return &Pipeline{
		source:    source,
		completer: completer,
		traversal: traversal,
		limits:    limits,
		logger:    slog.Default().With("component", "agent"),
	}
}

// GenerateSummary runs the README-only pipeline: fetch README, summarize
// through the LLM, sanitize and format the response.
func (p *Pipeline) GenerateSummary(ctx context.Context, repo string) (*models.SummaryResult, error) {
	owner, name, err := config.ParseRepo(repo)
	if err != nil {
		return nil, err
	}

	readme, err := p.fetchReadme(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	readme = truncate(readme, p.limits.MaxReadmeChars)

	raw, err := p.completer.CompleteJSON(ctx, prompts.SummarySystem, prompts.SummaryUser(repo, readme))
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	summaryJSON := parsed.Indented()
	p.logger.Info("summary generated", "repo", repo, "response_length", len(raw))

	return &models.SummaryResult{
		Repo:        repo,
		SummaryJSON: summaryJSON,
		Formatted:   output.FormatSummary(summaryJSON),
	}, nil
}

// GenerateTour runs the full pipeline: fetch README and tree, classify and
// aggregate, assemble the bounded prompt payload, and sanitize the LLM
// response into a tour result.
func (p *Pipeline) GenerateTour(ctx context.Context, repo string, maxDepth int) (*models.TourResult, error) {
	owner, name, err := config.ParseRepo(repo)
	if err != nil {
		return nil, err
	}

	readme, err := p.fetchReadme(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	entries, err := tree.Collect(ctx, repoLister{p.source, owner, name}, tree.Options{
		MaxDepth:    config.ClampDepth(maxDepth),
		SkipDirs:    p.traversal.SkipDirs,
		HiddenAllow: p.traversal.HiddenAllow,
		Concurrency: p.traversal.MaxListCalls,
	})
	if err != nil {
		return nil, err
	}

	categories := classify.Classify(entries, p.limits.MaxPerCategory)
	stats := classify.Aggregate(entries)

	userPrompt := p.assembleTourPrompt(repo, readme, entries, categories, stats)

	raw, err := p.completer.CompleteJSON(ctx, prompts.TourSystem, userPrompt)
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	tourJSON := parsed.Indented()
	p.logger.Info("tour generated", "repo", repo,
		"tree_items", len(entries), "response_length", len(raw))

	return &models.TourResult{
		Repo:       repo,
		TourJSON:   tourJSON,
		Formatted:  output.FormatTour(tourJSON),
		Stats:      stats,
		Categories: categories,
	}, nil
}

// assembleTourPrompt applies the fixed payload-protection policy: at most
// MaxTreeItems tree entries in traversal order, README capped at
// MaxReadmeChars, category lists already capped by the classifier.
func (p *Pipeline) assembleTourPrompt(repo, readme string, entries []models.PathEntry,
	categories map[models.Category][]string, stats models.RepoStats) string {

	bounded := entries
	if len(bounded) > p.limits.MaxTreeItems {
		bounded = bounded[:p.limits.MaxTreeItems]
	}

	truncated := truncate(readme, p.limits.MaxReadmeChars)
	if len(readme) > len(truncated) {
		truncated += "\n\n[... README truncated for brevity ...]"
	}

	return prompts.TourUser(repo, truncated,
		output.FormatTree(bounded),
		output.FormatCategories(categories),
		output.FormatStats(stats))
}

// fetchReadme recovers a missing README locally; every other failure
// propagates.
func (p *Pipeline) fetchReadme(ctx context.Context, owner, name string) (string, error) {
	readme, err := p.source.GetReadme(ctx, owner, name)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindReadmeMissing) {
			p.logger.Warn("readme missing, continuing with placeholder", "repo", owner+"/"+name)
			return readmeMissingPlaceholder, nil
		}
		return "", err
	}
	return readme, nil
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// repoLister adapts a RepoSource to the collector's Lister interface for
// one repository.
type repoLister struct {
	source RepoSource
	owner  string
	name   string
}

func (l repoLister) ListChildren(ctx context.Context, path string) ([]models.ChildInfo, error) {
	return l.source.ListChildren(ctx, l.owner, l.name, path)
}
