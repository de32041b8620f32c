// Package session stores the authenticated identity and credential token
// and decides whether protected commands may run.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskctl/internal/service"
)

// FileName is the fixed name of the durable session record.
const FileName = "user.json"

// ErrCorrupt indicates the session record exists but cannot be decoded.
var ErrCorrupt = errors.New("session record is corrupt")

// StoreError reports a failure to read or write the session record.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + " session: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// Session is the authenticated identity and its credential.
type Session struct {
	ID        service.ID `json:"id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	Token     string     `json:"accessToken"`
	TokenType string     `json:"tokenType,omitempty"`
}

// FromAuthResponse builds a session from a signin response.
func FromAuthResponse(r service.AuthResponse) *Session {
	return &Session{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		Roles:     r.Roles,
		Token:     r.AccessToken,
		TokenType: r.BearerType(),
	}
}

// Valid reports whether the session carries a non-empty token.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Store reads and writes the durable session record.
type Store struct {
	path string
}

// NewStore returns a store for the record in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the record's file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record from disk. It is read on every call.
// Returns nil, nil when no record exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &sess, nil
}

// Save writes the record with mode 0600, creating the directory with
// mode 0700. The file is replaced atomically so a failed write never
// leaves a partial record.
func (s *Store) Save(sess *Session) error {
	if !sess.Valid() {
		return errors.New("refusing to save session without token")
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &StoreError{Op: "write", Err: err}
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return &StoreError{Op: "write", Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StoreError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return nil
}

// Clear removes the record. A missing record is not an error.
// Returns whether a record was removed.
func (s *Store) Clear() (bool, error) {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "remove", Err: err}
	}
	return true, nil
}

// IsAuthenticated reports whether a readable record with a non-empty
// token exists.
func (s *Store) IsAuthenticated() bool {
	sess, err := s.Load()
	if err != nil {
		return false
	}
	return sess.Valid()
}
