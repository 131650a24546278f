package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repotour/repotour/internal/models"
)

func fileEntry(path, name string) models.PathEntry {
	return models.PathEntry{Path: path, Name: name, Kind: models.KindFile, Depth: 1}
}

func dirEntry(path, name string) models.PathEntry {
	return models.PathEntry{Path: path, Name: name, Kind: models.KindDir, Depth: 1}
}

func TestClassify_CategoryMatching(t *testing.T) {
	tests := []struct {
		name     string
		entry    models.PathEntry
		category models.Category
	}{
		{"readme is documentation", fileEntry("README.md", "README.md"), models.CategoryDocumentation},
		{"license is documentation", fileEntry("LICENSE", "LICENSE"), models.CategoryDocumentation},
		{"docs dir content is documentation", fileEntry("docs/guide.md", "guide.md"), models.CategoryDocumentation},
		{"requirements is dependencies", fileEntry("requirements.txt", "requirements.txt"), models.CategoryDependencies},
		{"dev requirements is dependencies", fileEntry("dev-requirements.txt", "dev-requirements.txt"), models.CategoryDependencies},
		{"go.mod is dependencies", fileEntry("go.mod", "go.mod"), models.CategoryDependencies},
		{"Pipfile is dependencies", fileEntry("Pipfile", "Pipfile"), models.CategoryDependencies},
		{"gitignore is config", fileEntry(".gitignore", ".gitignore"), models.CategoryConfig},
		{"settings path is config", fileEntry("app/settings/base.py", "base.py"), models.CategoryConfig},
		{"main.py is entry point", fileEntry("main.py", "main.py"), models.CategoryEntryPoint},
		{"cmd path is entry point", fileEntry("cmd/server/root.go", "root.go"), models.CategoryEntryPoint},
		{"workflow file is CI/CD", fileEntry(".github/workflows/ci.yml", "ci.yml"), models.CategoryCICD},
		{"travis file is CI/CD", fileEntry(".travis.yml", ".travis.yml"), models.CategoryCICD},
		{"Dockerfile is docker", fileEntry("Dockerfile", "Dockerfile"), models.CategoryDocker},
		{"compose file is docker", fileEntry("docker-compose.yml", "docker-compose.yml"), models.CategoryDocker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify([]models.PathEntry{tt.entry}, 0)
			assert.Contains(t, result[tt.category], tt.entry.Path)
		})
	}
}

func TestClassify_AllCategoriesAlwaysPresent(t *testing.T) {
	result := Classify(nil, 0)

	assert.Len(t, result, len(models.Categories))
	for _, c := range models.Categories {
		assert.NotNil(t, result[c], "category %s", c)
		assert.Empty(t, result[c])
	}
}

func TestClassify_UnmatchedFileLandsNowhere(t *testing.T) {
	result := Classify([]models.PathEntry{fileEntry("lib/parser.rb", "parser.rb")}, 0)

	for _, c := range models.Categories {
		assert.Empty(t, result[c])
	}
}

func TestClassify_DirectoriesIgnored(t *testing.T) {
	result := Classify([]models.PathEntry{dirEntry("docs", "docs"), dirEntry("cmd", "cmd")}, 0)

	for _, c := range models.Categories {
		assert.Empty(t, result[c])
	}
}

func TestClassify_MultiCategoryFile(t *testing.T) {
	// .dockerignore matches both config and docker rules
	result := Classify([]models.PathEntry{fileEntry(".dockerignore", ".dockerignore")}, 0)

	assert.Contains(t, result[models.CategoryConfig], ".dockerignore")
	assert.Contains(t, result[models.CategoryDocker], ".dockerignore")
}

func TestClassify_CapPerCategory(t *testing.T) {
	var entries []models.PathEntry
	for i := 0; i < 15; i++ {
		path := fmt.Sprintf("docs/page%02d.md", i)
		entries = append(entries, fileEntry(path, fmt.Sprintf("page%02d.md", i)))
	}
	entries = append(entries, fileEntry("main.py", "main.py"))

	result := Classify(entries, 10)

	assert.Len(t, result[models.CategoryDocumentation], 10)
	// first ten in input order
	assert.Equal(t, "docs/page00.md", result[models.CategoryDocumentation][0])
	assert.Equal(t, "docs/page09.md", result[models.CategoryDocumentation][9])
	// other categories still accumulate after one category fills up
	assert.Equal(t, []string{"main.py"}, result[models.CategoryEntryPoint])
}

func TestClassify_Deterministic(t *testing.T) {
	entries := []models.PathEntry{
		fileEntry("README.md", "README.md"),
		fileEntry("docs/a.md", "a.md"),
		fileEntry("main.py", "main.py"),
		fileEntry("Dockerfile", "Dockerfile"),
	}

	first := Classify(entries, 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(entries, 0))
	}
}
