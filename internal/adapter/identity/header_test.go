package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/rosteriq/internal/adapter/identity"
	"github.com/neomorfeo/rosteriq/internal/domain"
)

func TestHeaderResolver_Resolve(t *testing.T) {
	r := identity.NewHeaderResolver()

	userID, err := r.Resolve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "u-1" {
		t.Errorf("userID = %q, want %q", userID, "u-1")
	}
}

func TestHeaderResolver_TrimsWhitespace(t *testing.T) {
	r := identity.NewHeaderResolver()

	userID, err := r.Resolve(context.Background(), "  u-1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "u-1" {
		t.Errorf("userID = %q, want %q", userID, "u-1")
	}
}

func TestHeaderResolver_Missing(t *testing.T) {
	r := identity.NewHeaderResolver()

	for _, credential := range []string{"", "   "} {
		_, err := r.Resolve(context.Background(), credential)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("Resolve(%q): expected ErrUnauthenticated, got %v", credential, err)
		}
	}
}
