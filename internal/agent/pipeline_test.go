package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/models"
)

// fakeSource serves a canned README and tree.
type fakeSource struct {
	readme    string
	readmeErr error
	dirs      map[string][]models.ChildInfo
}

func (f *fakeSource) GetReadme(ctx context.Context, owner, name string) (string, error) {
	if f.readmeErr != nil {
		return "", f.readmeErr
	}
	return f.readme, nil
}

func (f *fakeSource) ListChildren(ctx context.Context, owner, name, path string) ([]models.ChildInfo, error) {
	return f.dirs[path], nil
}

// fakeCompleter records prompts and returns a fixed response.
type fakeCompleter struct {
	response string
	err      error

	systemPrompts []string
	userPrompts   []string
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systemPrompts = append(f.systemPrompts, systemPrompt)
	f.userPrompts = append(f.userPrompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testTraversal() config.TraversalConfig {
	return config.TraversalConfig{
		MaxDepth:     3,
		SkipDirs:     config.DefaultSkipDirs,
		HiddenAllow:  config.DefaultHiddenAllow,
		MaxListCalls: 2,
	}
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{MaxTreeItems: 200, MaxReadmeChars: 5000, MaxPerCategory: 10}
}

func TestGenerateSummary(t *testing.T) {
	source := &fakeSource{readme: "# Flask\nA web framework."}
	completer := &fakeCompleter{response: `{"repository_name": "Flask", "overview": "A web framework."}`}

	p := New(source, completer, testTraversal(), testLimits())
	result, err := p.GenerateSummary(context.Background(), "pallets/flask")
	require.NoError(t, err)

	assert.Equal(t, "pallets/flask", result.Repo)
	assert.Contains(t, result.SummaryJSON, `"repository_name": "Flask"`)
	assert.Contains(t, result.Formatted, "Flask")

	require.Len(t, completer.userPrompts, 1)
	assert.Contains(t, completer.userPrompts[0], "# Flask")
	assert.Contains(t, completer.userPrompts[0], "pallets/flask")
}

func TestGenerateSummary_InvalidRepoRejectedBeforeNetwork(t *testing.T) {
	completer := &fakeCompleter{}
	p := New(&fakeSource{}, completer, testTraversal(), testLimits())

	_, err := p.GenerateSummary(context.Background(), "not-a-repo")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, completer.userPrompts)
}

func TestGenerateSummary_MissingReadmeUsesPlaceholder(t *testing.T) {
	source := &fakeSource{
		readmeErr: apperrors.New(apperrors.KindReadmeMissing, "no readme"),
	}
	completer := &fakeCompleter{response: `{"purpose": "unknown"}`}

	p := New(source, completer, testTraversal(), testLimits())
	_, err := p.GenerateSummary(context.Background(), "owner/repo")
	require.NoError(t, err)

	require.Len(t, completer.userPrompts, 1)
	assert.Contains(t, completer.userPrompts[0], "README.md not found in repository.")
}

func TestGenerateSummary_OtherReadmeErrorsPropagate(t *testing.T) {
	source := &fakeSource{
		readmeErr: apperrors.New(apperrors.KindRateLimited, "rate limit exceeded"),
	}
	p := New(source, &fakeCompleter{}, testTraversal(), testLimits())

	_, err := p.GenerateSummary(context.Background(), "owner/repo")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))
}

func TestGenerateSummary_ReadmeTruncated(t *testing.T) {
	source := &fakeSource{readme: strings.Repeat("x", 9000)}
	completer := &fakeCompleter{response: `{"purpose": "big"}`}

	p := New(source, completer, testTraversal(), testLimits())
	_, err := p.GenerateSummary(context.Background(), "owner/repo")
	require.NoError(t, err)

	require.Len(t, completer.userPrompts, 1)
	assert.NotContains(t, completer.userPrompts[0], strings.Repeat("x", 5001))
	assert.Contains(t, completer.userPrompts[0], strings.Repeat("x", 5000))
}

func TestGenerateSummary_MalformedResponseFails(t *testing.T) {
	source := &fakeSource{readme: "readme"}
	completer := &fakeCompleter{response: "I refuse to produce JSON today."}

	p := New(source, completer, testTraversal(), testLimits())
	_, err := p.GenerateSummary(context.Background(), "owner/repo")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindLLMResponse))
	assert.Equal(t, "I refuse to produce JSON today.", apperrors.GetRaw(err))
}

func TestGenerateTour(t *testing.T) {
	source := &fakeSource{
		readme: "# Project",
		dirs: map[string][]models.ChildInfo{
			"": {
				{Name: "src", Kind: models.KindDir},
				{Name: "README.md", Kind: models.KindFile, Size: 50},
				{Name: "Dockerfile", Kind: models.KindFile, Size: 20},
			},
			"src": {
				{Name: "main.py", Kind: models.KindFile, Size: 10},
			},
		},
	}
	completer := &fakeCompleter{response: `{"repo_overview": "A project.", "key_folders": []}`}

	p := New(source, completer, testTraversal(), testLimits())
	result, err := p.GenerateTour(context.Background(), "owner/repo", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.TotalFiles)
	assert.Equal(t, 1, result.Stats.TotalDirectories)
	assert.Equal(t, []string{"src"}, result.Stats.TopLevelDirs)
	assert.Contains(t, result.Categories[models.CategoryDocker], "Dockerfile")
	assert.Contains(t, result.Categories[models.CategoryEntryPoint], "src/main.py")
	assert.Contains(t, result.TourJSON, "repo_overview")

	require.Len(t, completer.userPrompts, 1)
	assert.Contains(t, completer.userPrompts[0], "src/main.py")
	assert.Contains(t, completer.userPrompts[0], "# Project")
}

func TestGenerateTour_TreeItemCap(t *testing.T) {
	children := make([]models.ChildInfo, 0, 300)
	for i := 0; i < 300; i++ {
		children = append(children, models.ChildInfo{
			Name: fileName(i), Kind: models.KindFile, Size: 1,
		})
	}
	source := &fakeSource{
		readme: "readme",
		dirs:   map[string][]models.ChildInfo{"": children},
	}
	completer := &fakeCompleter{response: `{"repo_overview": "big"}`}

	limits := testLimits()
	limits.MaxTreeItems = 200

	p := New(source, completer, testTraversal(), limits)
	_, err := p.GenerateTour(context.Background(), "owner/repo", 1)
	require.NoError(t, err)

	require.Len(t, completer.userPrompts, 1)
	// entries are zero-padded so lexical order matches numeric order:
	// entry 199 survives the cap, entry 200 does not
	assert.Contains(t, completer.userPrompts[0], fileName(199))
	assert.NotContains(t, completer.userPrompts[0], fileName(200))
}

func TestGenerateTour_ReadmeTruncationMarker(t *testing.T) {
	source := &fakeSource{
		readme: strings.Repeat("r", 6000),
		dirs:   map[string][]models.ChildInfo{"": {{Name: "a.txt", Kind: models.KindFile}}},
	}
	completer := &fakeCompleter{response: `{"repo_overview": "x"}`}

	p := New(source, completer, testTraversal(), testLimits())
	_, err := p.GenerateTour(context.Background(), "owner/repo", 2)
	require.NoError(t, err)

	require.Len(t, completer.userPrompts, 1)
	assert.Contains(t, completer.userPrompts[0], "[... README truncated for brevity ...]")
}

func fileName(i int) string {
	return fmt.Sprintf("file%03d.txt", i)
}
