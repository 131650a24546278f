package github

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/models"
)

func apiError(status int) error {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: status},
		Message:  "api error",
	}
}

func TestMapAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperrors.Kind
	}{
		{"404 is repo not found", apiError(http.StatusNotFound), apperrors.KindRepoNotFound},
		{"401 is access denied", apiError(http.StatusUnauthorized), apperrors.KindAccessDenied},
		{"403 is access denied", apiError(http.StatusForbidden), apperrors.KindAccessDenied},
		{"500 is external", apiError(http.StatusInternalServerError), apperrors.KindExternal},
		{"plain error is external", errors.New("connection reset"), apperrors.KindExternal},
		{"rate limit error", &github.RateLimitError{}, apperrors.KindRateLimited},
		{"abuse rate limit error", &github.AbuseRateLimitError{}, apperrors.KindRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapAPIError(tt.err, "owner", "repo")
			assert.True(t, apperrors.IsKind(mapped, tt.kind),
				"got kind %v", apperrors.GetKind(mapped))
		})
	}
}

func TestToChildInfo(t *testing.T) {
	fileType, dirType := "file", "dir"
	fileName, dirName := "main.go", "src"
	size := 1234

	fileInfo := toChildInfo(&github.RepositoryContent{
		Type: &fileType, Name: &fileName, Size: &size,
	})
	assert.Equal(t, models.ChildInfo{Name: "main.go", Kind: models.KindFile, Size: 1234}, fileInfo)

	dirInfo := toChildInfo(&github.RepositoryContent{
		Type: &dirType, Name: &dirName, Size: &size,
	})
	assert.Equal(t, models.ChildInfo{Name: "src", Kind: models.KindDir, Size: 0}, dirInfo)
}

func TestNewClient_DefaultsRateLimit(t *testing.T) {
	c := NewClient("", 0)
	assert.NotNil(t, c.client)
	assert.NotNil(t, c.rateLimiter)
}
