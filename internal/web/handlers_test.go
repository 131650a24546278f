package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotour/repotour/internal/agent"
	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/models"
)

type stubSource struct {
	readme string
	dirs   map[string][]models.ChildInfo
	err    error
}

func (s *stubSource) GetReadme(ctx context.Context, owner, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.readme, nil
}

func (s *stubSource) ListChildren(ctx context.Context, owner, name, path string) ([]models.ChildInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dirs[path], nil
}

type stubCompleter struct {
	response string
}

func (s *stubCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.response, nil
}

func newTestServer(source agent.RepoSource, completer agent.Completer) *Server {
	cfg := config.Default()
	pipeline := agent.New(source, completer, cfg.Traversal, cfg.Limits)
	return NewServer(pipeline, cfg, 0)
}

func postAnalyze(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleAnalyze(w, req)
	return w
}

func TestHandleAnalyze_Summary(t *testing.T) {
	source := &stubSource{readme: "# Demo"}
	completer := &stubCompleter{response: `{"repository_name": "demo", "overview": "A demo."}`}
	s := newTestServer(source, completer)

	w := postAnalyze(t, s, `{"repo": "owner/demo", "mode": "summary"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sessionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "summary", resp.Mode)
	assert.Equal(t, "owner/demo", resp.Repo)
	assert.NotNil(t, resp.Result)
}

func TestHandleAnalyze_DefaultsToTour(t *testing.T) {
	source := &stubSource{
		readme: "# Demo",
		dirs: map[string][]models.ChildInfo{
			"": {{Name: "main.py", Kind: models.KindFile, Size: 5}},
		},
	}
	completer := &stubCompleter{response: `{"repository_name": "demo"}`}
	s := newTestServer(source, completer)

	w := postAnalyze(t, s, `{"repo": "owner/demo"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sessionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tour", resp.Mode)
}

func TestHandleAnalyze_RejectsGet(t *testing.T) {
	s := newTestServer(&stubSource{}, &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()
	s.handleAnalyze(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	s := newTestServer(&stubSource{}, &stubCompleter{})

	w := postAnalyze(t, s, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_InvalidRepo(t *testing.T) {
	s := newTestServer(&stubSource{}, &stubCompleter{})

	w := postAnalyze(t, s, `{"repo": "no-slash-here"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION", resp.Kind)
}

func TestHandleAnalyze_ErrorKindStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		kind       apperrors.Kind
		wantStatus int
		wantKind   string
	}{
		{"repo not found", apperrors.KindRepoNotFound, http.StatusNotFound, "REPO_NOT_FOUND"},
		{"access denied", apperrors.KindAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{"rate limited", apperrors.KindRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"llm auth", apperrors.KindLLMAuth, http.StatusUnauthorized, "LLM_AUTH"},
		{"external", apperrors.KindExternal, http.StatusBadGateway, "EXTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{err: apperrors.New(tt.kind, "upstream said no")}
			s := newTestServer(source, &stubCompleter{})

			w := postAnalyze(t, s, `{"repo": "owner/demo", "mode": "summary"}`)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
		})
	}
}

func TestHandleAnalyze_MalformedLLMResponseKeepsRaw(t *testing.T) {
	source := &stubSource{readme: "# Demo"}
	completer := &stubCompleter{response: "sorry, no JSON from me"}
	s := newTestServer(source, completer)

	w := postAnalyze(t, s, `{"repo": "owner/demo", "mode": "summary"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LLM_RESPONSE", resp.Kind)
	assert.Equal(t, "sorry, no JSON from me", resp.Raw)
}

func TestResultLifecyclePerSession(t *testing.T) {
	source := &stubSource{readme: "# Demo"}
	completer := &stubCompleter{response: `{"repository_name": "demo"}`}
	s := newTestServer(source, completer)

	// analyze mints a session cookie alongside the result
	w := postAnalyze(t, s, `{"repo": "owner/demo", "mode": "summary"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	session := cookies[0]
	assert.Equal(t, sessionCookie, session.Name)

	// the same session sees its cached result
	req := httptest.NewRequest(http.MethodGet, "/api/result", nil)
	req.AddCookie(session)
	w2 := httptest.NewRecorder()
	s.handleResult(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// a different session sees nothing
	req = httptest.NewRequest(http.MethodGet, "/api/result", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "other-session"})
	w3 := httptest.NewRecorder()
	s.handleResult(w3, req)
	assert.Equal(t, http.StatusNotFound, w3.Code)

	// clearing drops the cached result
	req = httptest.NewRequest(http.MethodPost, "/api/clear", nil)
	req.AddCookie(session)
	w4 := httptest.NewRecorder()
	s.handleClear(w4, req)
	assert.Equal(t, http.StatusOK, w4.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/result", nil)
	req.AddCookie(session)
	w5 := httptest.NewRecorder()
	s.handleResult(w5, req)
	assert.Equal(t, http.StatusNotFound, w5.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&stubSource{}, &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
