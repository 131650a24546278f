package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookie = "rtour_session"

// sessionResult is one session's last-result cache. Results are scoped to
// the session that produced them; there is no cross-session sharing.
type sessionResult struct {
	Mode      string    `json:"mode"`
	Repo      string    `json:"repo"`
	Result    any       `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// sessionStore keeps per-session last results in memory. Entries live for
// the lifetime of the server process only.
type sessionStore struct {
	mu      sync.RWMutex
	results map[string]*sessionResult
}

func newSessionStore() *sessionStore {
	return &sessionStore{results: make(map[string]*sessionResult)}
}

func (s *sessionStore) get(id string) (*sessionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}

func (s *sessionStore) set(id string, r *sessionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = r
}

func (s *sessionStore) clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
}

// sessionID returns the request's session identifier, minting a new one
// and setting the cookie when absent.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
