package models

// EntryKind distinguishes files from directories in a traversal result.
type EntryKind string

const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// ChildInfo is one immediate child of a directory as reported by the
// repository contents API.
type ChildInfo struct {
	Name string
	Kind EntryKind
	Size int64
}

// PathEntry is one node discovered while walking a repository tree.
// Paths are repository-relative and forward-slash separated; Depth is the
// number of path segments, so root-level entries have Depth 1.
type PathEntry struct {
	Path  string    `json:"path"`
	Name  string    `json:"name"`
	Kind  EntryKind `json:"kind"`
	Size  int64     `json:"size"`
	Depth int       `json:"depth"`
}

// IsDir reports whether the entry is a directory.
func (e PathEntry) IsDir() bool { return e.Kind == KindDir }

// Category is a semantic bucket a file path can be classified into.
// A file may belong to any number of categories; classification is not
// a partition.
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategoryDependencies  Category = "dependencies"
	CategoryConfig        Category = "config"
	CategoryEntryPoint    Category = "entry_points"
	CategoryCICD          Category = "ci_cd"
	CategoryDocker        Category = "docker"
)

// Categories lists all classification buckets in display order.
var Categories = []Category{
	CategoryDocumentation,
	CategoryDependencies,
	CategoryConfig,
	CategoryEntryPoint,
	CategoryCICD,
	CategoryDocker,
}

// Title returns a human-readable label for the category.
func (c Category) Title() string {
	switch c {
	case CategoryDocumentation:
		return "Documentation"
	case CategoryDependencies:
		return "Dependencies"
	case CategoryConfig:
		return "Config"
	case CategoryEntryPoint:
		return "Entry Points"
	case CategoryCICD:
		return "CI/CD"
	case CategoryDocker:
		return "Docker"
	default:
		return string(c)
	}
}

// ExtensionCount is one row of the extension histogram. Extensions carry
// the leading dot; files without one land in the "" bucket.
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// RepoStats is an aggregate snapshot over one traversal result.
type RepoStats struct {
	TotalFiles       int              `json:"total_files"`
	TotalDirectories int              `json:"total_directories"`
	ExtensionCounts  []ExtensionCount `json:"extension_counts"`
	TopLevelDirs     []string         `json:"top_level_dirs"`
}

// SummaryResult bundles the outcome of a README-only summary run.
type SummaryResult struct {
	Repo        string `json:"repo"`
	SummaryJSON string `json:"summary_json"`
	Formatted   string `json:"formatted_summary"`
}

// TourResult bundles the outcome of a full guided-tour run.
type TourResult struct {
	Repo       string                `json:"repo"`
	TourJSON   string                `json:"tour_json"`
	Formatted  string                `json:"formatted_tour"`
	Stats      RepoStats             `json:"repo_stats"`
	Categories map[Category][]string `json:"important_files"`
}
