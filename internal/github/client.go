package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/models"
)

// Client wraps the GitHub API client with rate limiting
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new GitHub client. An empty token yields an
// unauthenticated client, which works for public repositories at a
// lower quota.
func NewClient(token string, rateLimit int) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:      slog.Default().With("component", "github"),
	}
}

// GetReadme fetches and decodes the repository README. A missing README
// surfaces as KindReadmeMissing so the pipeline can recover locally.
func (c *Client) GetReadme(ctx context.Context, owner, name string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", apperrors.Wrap(err, apperrors.KindInternal, "rate limiter")
	}

	readme, _, err := c.client.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return "", apperrors.Newf(apperrors.KindReadmeMissing,
				"README not found in repository %s/%s", owner, name)
		}
		return "", mapAPIError(err, owner, name)
	}

	content, err := readme.GetContent()
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.KindExternal,
			"failed to decode README for %s/%s", owner, name)
	}

	c.logger.Debug("fetched readme", "repo", owner+"/"+name, "bytes", len(content))
	return content, nil
}

// ListChildren returns the immediate children of a repository path. The
// empty path lists the repository root.
func (c *Client) ListChildren(ctx context.Context, owner, name, path string) ([]models.ChildInfo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "rate limiter")
	}

	fileContent, dirContent, _, err := c.client.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return nil, mapAPIError(err, owner, name)
	}

	// A file path returns a single content object instead of a listing.
	if fileContent != nil {
		return []models.ChildInfo{toChildInfo(fileContent)}, nil
	}

	children := make([]models.ChildInfo, 0, len(dirContent))
	for _, item := range dirContent {
		children = append(children, toChildInfo(item))
	}

	c.logger.Debug("listed children", "repo", owner+"/"+name, "path", path, "count", len(children))
	return children, nil
}

func toChildInfo(item *github.RepositoryContent) models.ChildInfo {
	kind := models.KindFile
	size := int64(item.GetSize())
	if item.GetType() == "dir" {
		kind = models.KindDir
		size = 0
	}
	return models.ChildInfo{
		Name: item.GetName(),
		Kind: kind,
		Size: size,
	}
}

// mapAPIError translates go-github failures into the error kinds the
// front ends render.
func mapAPIError(err error, owner, name string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperrors.Wrapf(err, apperrors.KindRateLimited,
			"GitHub API rate limit exceeded (resets %s)", rateErr.Rate.Reset.Time.Format("15:04:05"))
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperrors.Wrap(err, apperrors.KindRateLimited, "GitHub API secondary rate limit hit")
	}

	switch statusOf(err) {
	case http.StatusNotFound:
		return apperrors.Wrapf(err, apperrors.KindRepoNotFound,
			"repository %s/%s not found or is private", owner, name)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrapf(err, apperrors.KindAccessDenied,
			"access denied to repository %s/%s", owner, name)
	default:
		return apperrors.Wrapf(err, apperrors.KindExternal,
			"GitHub API request failed for %s/%s", owner, name)
	}
}

func statusOf(err error) int {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode
	}
	return 0
}
