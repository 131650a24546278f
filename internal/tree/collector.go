// Package tree walks a remote repository tree to a bounded depth,
// producing a flat, deterministically ordered list of path entries.
package tree

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/models"
)

// Lister supplies the immediate children of a repository path. The empty
// path addresses the repository root.
type Lister interface {
	ListChildren(ctx context.Context, path string) ([]models.ChildInfo, error)
}

// Options control a single traversal.
type Options struct {
	// MaxDepth bounds entry depth; entries have Depth in [1, MaxDepth].
	MaxDepth int
	// SkipDirs are directory names excluded at any depth and never
	// descended into.
	SkipDirs []string
	// HiddenAllow are root-level dot entries that survive the hidden
	// filter. The filter applies at the root only.
	HiddenAllow []string
	// Concurrency caps listing calls in flight per directory level.
	// Values below 1 mean sequential traversal.
	Concurrency int
}

type collector struct {
	lister      Lister
	maxDepth    int
	skipDirs    map[string]bool
	hiddenAllow map[string]bool
	concurrency int
	logger      *slog.Logger
}

// Collect walks the tree depth-first from the root. Within a directory,
// subdirectories come before files and each group is ordered lexically by
// name; a directory entry immediately precedes its subtree. Subtrees whose
// listing fails are omitted and traversal continues with siblings; only a
// root listing failure is returned as an error.
func Collect(ctx context.Context, lister Lister, opts Options) ([]models.PathEntry, error) {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	c := &collector{
		lister:      lister,
		maxDepth:    opts.MaxDepth,
		skipDirs:    toSet(opts.SkipDirs),
		hiddenAllow: toSet(opts.HiddenAllow),
		concurrency: opts.Concurrency,
		logger:      slog.Default().With("component", "tree"),
	}

	entries, err := c.walk(ctx, "", 0)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.KindExternal, "failed to list repository root")
	}
	if entries == nil {
		entries = []models.PathEntry{}
	}
	return entries, nil
}

// walk lists one directory and recurses into its subdirectories. depth is
// the directory's own depth; its children have depth+1.
func (c *collector) walk(ctx context.Context, dirPath string, depth int) ([]models.PathEntry, error) {
	children, err := c.lister.ListChildren(ctx, dirPath)
	if err != nil {
		return nil, err
	}

	children = c.filter(children, depth)
	sortChildren(children)

	// Recurse into subdirectories first so subtree results can be
	// interleaved in deterministic order afterwards. Listing calls run
	// concurrently; a failed subtree yields nothing.
	subtrees := make([][]models.PathEntry, len(children))
	g := new(errgroup.Group)
	g.SetLimit(c.concurrency)
	for i, child := range children {
		if child.Kind != models.KindDir || depth+1 >= c.maxDepth {
			continue
		}
		childPath := joinPath(dirPath, child.Name)
		g.Go(func() error {
			sub, err := c.walk(ctx, childPath, depth+1)
			if err != nil {
				c.logger.Warn("subtree listing failed, omitting branch",
					"path", childPath, "error", err)
				return nil
			}
			subtrees[i] = sub
			return nil
		})
	}
	g.Wait()

	var out []models.PathEntry
	for i, child := range children {
		childPath := joinPath(dirPath, child.Name)
		out = append(out, models.PathEntry{
			Path:  childPath,
			Name:  child.Name,
			Kind:  child.Kind,
			Size:  child.Size,
			Depth: depth + 1,
		})
		out = append(out, subtrees[i]...)
	}
	return out, nil
}

func (c *collector) filter(children []models.ChildInfo, depth int) []models.ChildInfo {
	kept := children[:0]
	for _, child := range children {
		// Root-level dot entries are noise unless allow-listed. Deeper
		// levels keep hidden entries (e.g. .github/workflows contents).
		if depth == 0 && strings.HasPrefix(child.Name, ".") && !c.hiddenAllow[child.Name] {
			continue
		}
		if child.Kind == models.KindDir && c.skipDirs[child.Name] {
			continue
		}
		kept = append(kept, child)
	}
	return kept
}

// sortChildren orders directories before files, each group lexically by
// name. This ordering is an output contract: downstream truncation and
// top-level-dir extraction depend on it.
func sortChildren(children []models.ChildInfo) {
	sort.SliceStable(children, func(i, j int) bool {
		di, dj := children[i].Kind == models.KindDir, children[j].Kind == models.KindDir
		if di != dj {
			return di
		}
		ni, nj := strings.ToLower(children[i].Name), strings.ToLower(children[j].Name)
		if ni != nj {
			return ni < nj
		}
		return children[i].Name < children[j].Name
	})
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
