package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session holds the bearer token of the signed-in account. The zero value is
// a signed-out session. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	admin bool
}

// NewSession returns a session for an existing token. admin records whether
// the token came from the admin login.
func NewSession(token string, admin bool) *Session {
	return &Session{token: strings.TrimSpace(token), admin: admin}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Admin reports whether the token was minted by the admin login.
func (s *Session) Admin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

func (s *Session) set(token string, admin bool) {
	s.mu.Lock()
	s.token, s.admin = token, admin
	s.mu.Unlock()
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.set("", false)
}

// DefaultSessionPath returns ~/.offers/token.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".offers", "token"), nil
}

const adminMarker = "admin:"

// LoadSession reads a session saved by Save. A missing file yields a
// signed-out session and no error.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	line := strings.TrimSpace(string(data))
	if rest, ok := strings.CutPrefix(line, adminMarker); ok {
		return NewSession(rest, true), nil
	}
	return NewSession(line, false), nil
}

// Save writes the session to path (mode 0600), or removes the file when the
// session is signed out. The file is replaced via rename, so an existing file
// with wider permissions does not keep them.
func (s *Session) Save(path string) error {
	token, admin := s.Token(), s.Admin()
	if token == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if admin {
		token = adminMarker + token
	}

	// CreateTemp opens the file with mode 0600.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
