// Package session keeps per-browser reconciliation results in memory,
// keyed by an opaque cookie. A session holds at most one result; running
// the pipeline again replaces it wholesale.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/corporativo/sdu/pkg/reconcile"
)

// CookieName is the session cookie the server issues.
const CookieName = "sdu_session"

// Store holds session results in memory.
type Store struct {
	mu      sync.RWMutex
	results map[string]*reconcile.Result
}

// New creates an empty session store.
func New() *Store {
	return &Store{results: make(map[string]*reconcile.Result)}
}

// Get returns the result for the request's session, if any.
func (s *Store) Get(r *http.Request) (*reconcile.Result, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[cookie.Value]
	return result, ok
}

// Put stores a result for the request's session, issuing a session cookie
// if the request does not carry one yet.
func (s *Store) Put(w http.ResponseWriter, r *http.Request, result *reconcile.Result) {
	id := s.sessionID(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = result
}

// Clear drops the result for the request's session.
func (s *Store) Clear(r *http.Request) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, cookie.Value)
}

// Len returns the number of sessions holding a result.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func (s *Store) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newID()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func newID() string {
	buf := make([]byte, 16)
	// rand.Read on supported platforms never fails
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
