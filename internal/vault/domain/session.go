package domain

import "sync"

// Session holds the master password for the lifetime of a process or client session.
//
// The password lives only in memory. A Session is owned by a single vault
// instance so independent sessions (and tests) never share state.
type Session struct {
	mu       sync.RWMutex
	password []byte
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// SetPassword replaces the session password.
func (s *Session) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	Zero(s.password)
	s.password = []byte(password)
	return nil
}

// Password returns a copy of the session password. The caller must Zero it after use.
func (s *Session) Password() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.password) == 0 {
		return nil, false
	}
	out := make([]byte, len(s.password))
	copy(out, s.password)
	return out, true
}

// HasPassword reports whether a password has been set.
func (s *Session) HasPassword() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.password) > 0
}

// Clear wipes the password from memory.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	Zero(s.password)
	s.password = nil
}
