package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fadna/oms/internal/models"
)

var ErrNoSession = errors.New("no active session")
var ErrExpired = errors.New("session expired")

// Claims mirror what the backend signs into the session token.
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated user held for the lifetime of the session.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// OwnsOrder reports whether this user is the order's owning agent. Ids are
// compared as trimmed strings in exactly one place so ownership checks
// cannot drift.
func (id Identity) OwnsOrder(o *models.Order) bool {
	if o == nil || o.Agent == nil {
		return false
	}
	return strings.TrimSpace(id.ID) != "" && strings.TrimSpace(id.ID) == strings.TrimSpace(o.Agent.ID)
}

// Session is the persisted client-side state: the token plus the identity
// it belongs to. Nothing else is stored on disk.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// New builds a session from a fresh login. Identity prefers the login
// response's user record and falls back to token claims.
func New(token string, user *models.User) (*Session, error) {
	id := identityFromToken(token)
	if user != nil {
		if user.ID != "" {
			id.ID = user.ID
		}
		if user.Name != "" {
			id.Name = user.Name
		}
		if user.Role != "" {
			id.Role = user.Role
		}
	}
	if id.ID == "" {
		return nil, errors.New("login response carried no identity")
	}
	return &Session{Token: token, User: id}, nil
}

func identityFromToken(token string) Identity {
	claims := &Claims{}
	// The signing secret lives on the backend; the client reads claims
	// without verifying. The backend re-checks the signature on every call.
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	return Identity{ID: id, Name: claims.Name, Role: claims.Role}
}

// expired reports whether the token carries an exp claim in the past.
func expired(token string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

// Save persists the session to file with owner-only permissions.
func (s *Session) Save(file string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load restores a previously saved session. Expired tokens are rejected so
// callers prompt for a fresh login instead of collecting 401s.
func Load(file string) (*Session, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	if s.Token == "" || s.User.ID == "" {
		return nil, ErrNoSession
	}
	if expired(s.Token) {
		return nil, ErrExpired
	}
	return &s, nil
}

// Clear is the logout teardown: the session file is removed and nothing
// else remains client-side.
func Clear(file string) error {
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
