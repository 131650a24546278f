package config

import (
	"strings"

	apperrors "github.com/repotour/repotour/internal/errors"
)

const (
	// MinDepth and MaxDepth bound the traversal depth selector.
	MinDepth = 1
	MaxDepth = 5
)

// ParseRepo validates and splits an "owner/repo" identifier. Rejection
// happens here, before any network call.
func ParseRepo(repo string) (owner, name string, err error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return "", "", apperrors.New(apperrors.KindValidation, "repository name cannot be empty")
	}

	parts := strings.Split(repo, "/")
	if len(parts) != 2 {
		return "", "", apperrors.ValidationErrorf(
			"repository must be in format 'owner/repo', got %q", repo)
	}

	owner = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if owner == "" || name == "" {
		return "", "", apperrors.New(apperrors.KindValidation,
			"owner and repository name cannot be empty")
	}

	return owner, name, nil
}

// ClampDepth forces a depth selection into the supported [1,5] range.
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}
