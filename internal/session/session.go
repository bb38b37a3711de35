// Package session persists the authenticated credential between runs so
// users don't have to log in on every launch.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jparker/inkwell/internal/model"
)

// Session is the persisted credential: the bearer token plus the user it
// belongs to.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store holds the live credential and its backing file. It is created in
// main and handed to the components that need it; nothing reads it
// through package state.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Session
}

// Open loads the session from dir. The returned store is usable even
// when loading fails; a corrupt file just means starting logged out.
func Open(dir string) (*Store, error) {
	s := &Store{path: filepath.Join(dir, "session.json")}
	return s, s.load()
}

// OpenDefault loads the session from the default config directory.
func OpenDefault() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Store{}, err
	}
	return Open(filepath.Join(home, ".config", "inkwell"))
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil // no session file yet, start logged out
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &s.current)
}

// Token returns the stored bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// User returns the stored account, zero-valued when logged out.
func (s *Store) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User
}

// Active reports whether a credential is stored.
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token != ""
}

// Set stores a fresh credential and writes it to disk.
func (s *Store) Set(token string, user model.User) error {
	s.mu.Lock()
	s.current = Session{Token: token, User: user}
	s.mu.Unlock()
	return s.save()
}

// Clear forgets the credential and removes the session file. Used on
// logout and whenever the backend rejects the token.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return err
	}

	// The file holds a live credential; keep it owner-readable only.
	return os.WriteFile(s.path, data, 0600)
}
