// Package classify buckets traversal results into semantic categories and
// computes aggregate repository statistics.
package classify

import (
	"strings"

	"github.com/repotour/repotour/internal/models"
)

// DefaultCategoryCap bounds matches kept per category.
const DefaultCategoryCap = 10

// rule is one category's matching predicate data. All comparisons are
// against lower-cased path and name. Fields are independent alternatives:
// a file matches when any of them hits.
type rule struct {
	category models.Category
	names    []string // exact filename match
	suffixes []string // filename suffix match
	nameSub  []string // substring of filename
	pathSub  []string // substring of full path
}

// rules drives classification. Adding a category is a data change here,
// not a control-flow change.
var rules = []rule{
	{
		category: models.CategoryDocumentation,
		nameSub:  []string{"readme", "contributing", "license", "changelog"},
		pathSub:  []string{"docs/"},
	},
	{
		category: models.CategoryDependencies,
		names: []string{
			"requirements.txt", "pyproject.toml", "package.json", "poetry.lock",
			"yarn.lock", "package-lock.json", "pipfile", "setup.py", "setup.cfg",
			"go.mod", "go.sum", "cargo.toml", "pom.xml", "build.gradle",
		},
		suffixes: []string{"requirements.txt"},
	},
	{
		category: models.CategoryConfig,
		names:    []string{".env.example", ".gitignore", ".dockerignore", "pytest.ini", "tox.ini", ".pre-commit-config.yaml"},
		pathSub:  []string{"config", "settings"},
	},
	{
		category: models.CategoryEntryPoint,
		nameSub:  []string{"main.py", "app.py", "server.py", "index.js", "index.ts", "main.ts", "application.java", "main.java", "main.go"},
		pathSub:  []string{"src/main", "app/main", "cmd/"},
	},
	{
		category: models.CategoryCICD,
		pathSub:  []string{".github/workflows", "ci/", ".gitlab-ci.yml", "azure-pipelines.yml", "jenkinsfile", ".travis.yml"},
	},
	{
		category: models.CategoryDocker,
		names:    []string{"dockerfile", "docker-compose.yml", "docker-compose.yaml", ".dockerignore"},
	},
}

func (r rule) matches(pathLower, nameLower string) bool {
	for _, n := range r.names {
		if nameLower == n {
			return true
		}
	}
	for _, s := range r.suffixes {
		if strings.HasSuffix(nameLower, s) {
			return true
		}
	}
	for _, s := range r.nameSub {
		if strings.Contains(nameLower, s) {
			return true
		}
	}
	for _, s := range r.pathSub {
		if strings.Contains(pathLower, s) {
			return true
		}
	}
	return false
}

// Classify tests every file against every category rule independently.
// A file may land in several buckets; a file matching nothing lands in
// none. Match order per category follows input order, and each category
// stops accumulating at cap while scanning continues for the others.
func Classify(entries []models.PathEntry, cap int) map[models.Category][]string {
	if cap <= 0 {
		cap = DefaultCategoryCap
	}

	result := make(map[models.Category][]string, len(models.Categories))
	for _, c := range models.Categories {
		result[c] = []string{}
	}

	for _, entry := range entries {
		if entry.Kind != models.KindFile {
			continue
		}
		pathLower := strings.ToLower(entry.Path)
		nameLower := strings.ToLower(entry.Name)

		for _, r := range rules {
			if len(result[r.category]) >= cap {
				continue
			}
			if r.matches(pathLower, nameLower) {
				result[r.category] = append(result[r.category], entry.Path)
			}
		}
	}

	return result
}
