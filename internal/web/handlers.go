package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
)

type analyzeRequest struct {
	Repo     string `json:"repo"`
	Mode     string `json:"mode"` // "summary" or "tour"
	MaxDepth int    `json:"max_depth"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Raw   string `json:"raw,omitempty"`
}

// handleAnalyze validates the request, runs the selected pipeline, and
// caches the outcome as the session's last result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: "VALIDATION"})
		return
	}

	// Reject malformed identifiers before any network call.
	if _, _, err := config.ParseRepo(req.Repo); err != nil {
		s.writeError(w, err)
		return
	}

	if req.Mode != "summary" {
		req.Mode = "tour"
	}
	depth := config.ClampDepth(req.MaxDepth)

	sid := sessionID(w, r)
	s.logger.Info("analyze request", "repo", req.Repo, "mode", req.Mode, "depth", depth)

	var result any
	var err error
	switch req.Mode {
	case "summary":
		result, err = s.pipeline.GenerateSummary(r.Context(), req.Repo)
	default:
		result, err = s.pipeline.GenerateTour(r.Context(), req.Repo, depth)
	}
	if err != nil {
		s.logger.Error("analyze failed", "repo", req.Repo, "error", err)
		s.writeError(w, err)
		return
	}

	cached := &sessionResult{
		Mode:      req.Mode,
		Repo:      req.Repo,
		Result:    result,
		CreatedAt: time.Now(),
	}
	s.sessions.set(sid, cached)

	writeJSON(w, http.StatusOK, cached)
}

// handleResult returns the session's last result, if any.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	cached, ok := s.sessions.get(sid)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no result for this session", Kind: "NOT_FOUND"})
		return
	}
	writeJSON(w, http.StatusOK, cached)
}

// handleClear drops the session's last result.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessions.clear(sessionID(w, r))
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// writeError maps error kinds onto HTTP statuses and preserves the raw
// payload for display.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := apperrors.GetKind(err)

	status := http.StatusInternalServerError
	kindName := "INTERNAL"
	switch kind {
	case apperrors.KindValidation:
		status, kindName = http.StatusBadRequest, "VALIDATION"
	case apperrors.KindRepoNotFound:
		status, kindName = http.StatusNotFound, "REPO_NOT_FOUND"
	case apperrors.KindAccessDenied:
		status, kindName = http.StatusForbidden, "ACCESS_DENIED"
	case apperrors.KindRateLimited:
		status, kindName = http.StatusTooManyRequests, "RATE_LIMITED"
	case apperrors.KindLLMAuth:
		status, kindName = http.StatusUnauthorized, "LLM_AUTH"
	case apperrors.KindLLMResponse:
		status, kindName = http.StatusBadGateway, "LLM_RESPONSE"
	case apperrors.KindExternal:
		status, kindName = http.StatusBadGateway, "EXTERNAL"
	case apperrors.KindConfig:
		status, kindName = http.StatusInternalServerError, "CONFIG"
	}

	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Kind:  kindName,
		Raw:   apperrors.GetRaw(err),
	})
}
