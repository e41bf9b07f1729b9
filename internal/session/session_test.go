package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fadna/oms/internal/models"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func liveClaims() Claims {
	return Claims{
		UserID: "u1",
		Name:   "Sithara",
		Role:   models.RoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestNewPrefersLoginUser(t *testing.T) {
	token := signToken(t, liveClaims())
	s, err := New(token, &models.User{ID: "u2", Name: "Override", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.User.ID != "u2" || s.User.Name != "Override" || s.User.Role != models.RoleAdmin {
		t.Errorf("identity = %+v, want the login user to win", s.User)
	}
}

func TestNewFallsBackToClaims(t *testing.T) {
	token := signToken(t, liveClaims())
	s, err := New(token, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.User.ID != "u1" || s.User.Role != models.RoleAgent {
		t.Errorf("identity = %+v, want it read from claims", s.User)
	}
}

func TestNewRejectsAnonymousToken(t *testing.T) {
	token := signToken(t, Claims{Name: "ghost"})
	if _, err := New(token, nil); err == nil {
		t.Error("expected error for a token with no user id")
	}
}

func TestSaveLoadClear(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "session")
	token := signToken(t, liveClaims())

	s, err := New(token, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Save(file); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Token != token || loaded.User != s.User {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := Clear(file); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := Load(file); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Clear() = %v, want ErrNoSession", err)
	}
	// Clearing twice is fine.
	if err := Clear(file); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() = %v, want ErrNoSession", err)
	}
}

func TestLoadRejectsExpiredToken(t *testing.T) {
	claims := liveClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, claims)

	file := filepath.Join(t.TempDir(), "session")
	s := &Session{Token: token, User: Identity{ID: "u1"}}
	if err := s.Save(file); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := Load(file); !errors.Is(err, ErrExpired) {
		t.Errorf("Load() = %v, want ErrExpired", err)
	}
}

func TestOwnsOrder(t *testing.T) {
	id := Identity{ID: "u1"}

	tests := []struct {
		name  string
		order *models.Order
		want  bool
	}{
		{"own order", &models.Order{Agent: &models.User{ID: "u1"}}, true},
		{"whitespace in ids", &models.Order{Agent: &models.User{ID: " u1 "}}, true},
		{"someone else's", &models.Order{Agent: &models.User{ID: "u2"}}, false},
		{"no agent", &models.Order{}, false},
		{"nil order", nil, false},
	}
	for _, tt := range tests {
		if got := id.OwnsOrder(tt.order); got != tt.want {
			t.Errorf("%s: OwnsOrder() = %v, want %v", tt.name, got, tt.want)
		}
	}

	if (Identity{}).OwnsOrder(&models.Order{Agent: &models.User{}}) {
		t.Error("empty ids must never match each other")
	}
}

func TestCapabilities(t *testing.T) {
	super := CapabilitiesFor(models.RoleSuperAdmin)
	if !super.CanManageUsers || !super.CanManageAgents || !super.CanManageProducts || !super.CanDeleteOrders || !super.CanDeleteCustomers {
		t.Errorf("super admin capabilities incomplete: %+v", super)
	}

	admin := CapabilitiesFor(models.RoleAdmin)
	if !admin.CanDispatch || !admin.CanImport || !admin.CanExportAll || !admin.CanSeeHistory {
		t.Errorf("admin capabilities incomplete: %+v", admin)
	}
	// Admins see the agent roster but cannot touch accounts.
	if !admin.CanManageAgents {
		t.Error("admins must be able to view the agent roster")
	}
	if admin.CanManageUsers || admin.CanDeleteOrders || admin.CanDeleteCustomers {
		t.Errorf("admin must not hold super-admin powers: %+v", admin)
	}

	agent := CapabilitiesFor(models.RoleAgent)
	if !agent.CanReport {
		t.Error("agents must keep the personal report")
	}
	if agent.CanManageAgents || agent.CanDispatch || agent.CanImport || agent.CanExportAll {
		t.Errorf("agent capabilities too broad: %+v", agent)
	}

	if CapabilitiesFor("Intern") != (Capabilities{}) {
		t.Error("unknown roles get the empty set")
	}
}
