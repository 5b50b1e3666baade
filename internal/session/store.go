// Package session persists the authenticated admin session for the signify
// client: the opaque bearer token plus the admin identity used to render
// "current user" without decoding the token. Both are stored and cleared
// together.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"signify/internal/logging"

	"go.uber.org/zap"
)

// Admin is the user-facing identity of the logged-in administrator.
type Admin struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Session is the persisted authentication state.
type Session struct {
	Token     string    `json:"token"`
	Admin     Admin     `json:"admin"`
	LoginTime time.Time `json:"login_time"`
}

// Store reads and writes the session file. It caches the loaded session in
// memory; Load is called once at startup and after every Save/Clear the
// cache stays consistent with disk.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
}

// NewStore creates a store backed by the session file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under dir (the signify
// config directory).
func DefaultPath(dir string) string {
	return filepath.Join(dir, "session.json")
}

// Load reads the session file into the cache. A missing file is not an
// error; it simply means nobody is logged in.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.current = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is treated as logged out rather than
		// wedging startup.
		logging.L(logging.CategorySession).Warn("discarding unreadable session file",
			zap.String("path", s.path), zap.Error(err))
		s.current = nil
		return nil
	}
	if sess.Token == "" {
		s.current = nil
		return nil
	}
	s.current = &sess
	return nil
}

// Save persists the session and updates the cache. The file is written
// with owner-only permissions since it carries the bearer token.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session %s: %w", s.path, err)
	}
	s.current = &sess
	logging.L(logging.CategorySession).Info("session saved",
		zap.String("admin", sess.Admin.Email))
	return nil
}

// Clear removes the session file and cache. Token and identity go together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session %s: %w", s.path, err)
	}
	logging.L(logging.CategorySession).Info("session cleared")
	return nil
}

// Current returns the cached session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// Token returns the bearer token, or empty when logged out. Satisfies the
// api client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
