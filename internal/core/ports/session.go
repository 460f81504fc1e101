package ports

import (
	"context"
	"time"

	"github.com/goodsru/user-panel/internal/core/domain"
)

// SessionStore holds server-side session records keyed by session ID.
// Records expire after the TTL passed to Save; Lookup of a missing or
// expired record returns domain.ErrSessionNotFound.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager drives the per-request authentication state machine:
// Anonymous <-> Authenticated(user).
type SessionManager interface {
	// Login validates credentials against the credential store. Unknown
	// username and wrong password both return domain.ErrInvalidCredentials;
	// correct credentials on a blocked account return domain.ErrAccountBlocked.
	// On success it returns a signed token suitable for a session cookie.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// Resolve turns a cookie token into an identity. Any failure, including
	// a tampered or expired token, resolves to Anonymous.
	Resolve(ctx context.Context, token string) domain.Identity

	// Logout invalidates the server-side session behind the token.
	Logout(ctx context.Context, token string) error

	// TTL is the configured session lifetime, also used for cookie expiry.
	TTL() time.Duration
}
