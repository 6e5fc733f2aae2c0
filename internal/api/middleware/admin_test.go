package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/offerhub/offers-api/internal/core/domain"
)

func TestRequireAdmin_Allows(t *testing.T) {
	c, rec := newContext("")
	c.Set(IdentityKey, &domain.Identity{ID: "a1", IsAdmin: true})

	if err := RequireAdmin()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_RejectsUser(t *testing.T) {
	c, _ := newContext("")
	c.Set(IdentityKey, &domain.Identity{ID: "u1"})

	if err := RequireAdmin()(okHandler)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdmin_RejectsAnonymous(t *testing.T) {
	c, _ := newContext("")

	if err := RequireAdmin()(okHandler)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
