// Package sessions implements token-based sessions held only in an
// expiring cache. Tokens are opaque, resolve to exactly one user while
// alive, and vanish on expiry or revocation. Sessions deliberately do not
// survive cache loss; re-authentication reissues them.
package sessions

import "context"

// Store issues, resolves, and revokes session tokens.
type Store interface {
	// Issue creates a token for userID with the store's TTL and returns it.
	Issue(ctx context.Context, userID string) (string, error)

	// Resolve returns the user id a live token maps to, or
	// common.ErrorNotFound when the token is absent or expired.
	Resolve(ctx context.Context, token string) (string, error)

	// Revoke deletes the token and reports whether it existed.
	// Revoking twice is a no-op returning false.
	Revoke(ctx context.Context, token string) (bool, error)
}
