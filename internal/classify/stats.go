package classify

import (
	"sort"
	"strings"

	"github.com/repotour/repotour/internal/models"
)

// topExtensions bounds the extension histogram.
const topExtensions = 10

// Aggregate computes counts over one traversal result. The extension
// histogram keeps the top 10 by descending count, ties broken by ascending
// extension; top-level directories keep traversal order, which is already
// dirs-before-files lexical at the root.
func Aggregate(entries []models.PathEntry) models.RepoStats {
	stats := models.RepoStats{
		ExtensionCounts: []models.ExtensionCount{},
		TopLevelDirs:    []string{},
	}

	extCounts := make(map[string]int)
	for _, entry := range entries {
		switch entry.Kind {
		case models.KindFile:
			stats.TotalFiles++
			extCounts[Extension(entry.Name)]++
		case models.KindDir:
			stats.TotalDirectories++
			if entry.Depth == 1 {
				stats.TopLevelDirs = append(stats.TopLevelDirs, entry.Name)
			}
		}
	}

	ranked := make([]models.ExtensionCount, 0, len(extCounts))
	for ext, count := range extCounts {
		ranked = append(ranked, models.ExtensionCount{Extension: ext, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Extension < ranked[j].Extension
	})
	if len(ranked) > topExtensions {
		ranked = ranked[:topExtensions]
	}
	stats.ExtensionCounts = ranked

	return stats
}

// Extension returns the lower-cased extension of a filename including the
// leading dot. Names without a dot, and leading-dot names with no further
// dot (".gitignore"), yield the empty string.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}
