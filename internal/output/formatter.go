// Package output renders results as text for the CLI and web front ends.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/repotour/repotour/internal/models"
)

// Formatter renders one tour result to a writer.
type Formatter interface {
	Format(result *models.TourResult, w io.Writer) error
}

// FormatTree renders traversal entries as an indented tree. Entries must
// arrive in traversal order (dirs-before-files, depth-first), which keeps
// nesting intact.
func FormatTree(entries []models.PathEntry) string {
	if len(entries) == 0 {
		return "No files found in repository."
	}

	var b strings.Builder
	for i, entry := range entries {
		indent := strings.Repeat("  ", entry.Depth-1)

		connector := ""
		if entry.Depth > 1 {
			if i == len(entries)-1 {
				connector = "└── "
			} else {
				connector = "├── "
			}
		}

		marker := "📄"
		if entry.IsDir() {
			marker = "📁"
		}

		fmt.Fprintf(&b, "%s%s%s %s\n", indent, connector, marker, entry.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCategories renders the classified-file buckets as one line per
// non-empty category.
func FormatCategories(categories map[models.Category][]string) string {
	var lines []string
	for _, c := range models.Categories {
		files := categories[c]
		if len(files) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", c.Title(), strings.Join(files, ", ")))
	}
	return strings.Join(lines, "\n")
}

// FormatStats renders the aggregate snapshot as a short block.
func FormatStats(stats models.RepoStats) string {
	exts := make([]string, 0, len(stats.ExtensionCounts))
	for _, ec := range stats.ExtensionCounts {
		if ec.Extension == "" {
			continue
		}
		exts = append(exts, ec.Extension)
		if len(exts) == 5 {
			break
		}
	}

	topDirs := stats.TopLevelDirs
	if len(topDirs) > 10 {
		topDirs = topDirs[:10]
	}

	return fmt.Sprintf(`Total Files: %d
Total Directories: %d
Top File Extensions: %s
Top-Level Directories: %s`,
		stats.TotalFiles,
		stats.TotalDirectories,
		strings.Join(exts, ", "),
		strings.Join(topDirs, ", "))
}
