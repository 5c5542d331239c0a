// Package identity resolves caller credentials into stable user IDs.
package identity

import (
	"context"
	"strings"

	"github.com/neomorfeo/rosteriq/internal/domain"
)

// Compile-time check: HeaderResolver implements domain.IdentityResolver.
var _ domain.IdentityResolver = (*HeaderResolver)(nil)

// HeaderResolver trusts the user ID forwarded by an authenticating reverse
// proxy in a request header. It is one implementation of the identity hook;
// a bearer-token verifier against an external provider plugs in the same way.
type HeaderResolver struct{}

// NewHeaderResolver creates a header-based identity resolver.
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{}
}

// Resolve returns the forwarded user ID, or ErrUnauthenticated when the
// header was absent or blank. It never falls back to a default identity.
func (r *HeaderResolver) Resolve(_ context.Context, credential string) (string, error) {
	userID := strings.TrimSpace(credential)
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
