package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService implements the Anonymous/Authenticated state machine. The
// browser cookie carries an HS256-signed token wrapping a random session ID;
// the session record itself lives server-side in the SessionStore, so logout
// revokes immediately and no client-settable value is ever trusted.
type SessionService struct {
	users  ports.UserService
	store  ports.SessionStore
	secret string
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionService(users ports.UserService, store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{users: users, store: store, secret: secret, ttl: ttl, log: log}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Login authenticates a username/password pair and establishes a session.
// Unknown username and wrong password are indistinguishable to the caller;
// a blocked account with correct credentials surfaces its own error but
// still establishes nothing.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.users.VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Status == domain.StatusBlocked {
		return "", nil, domain.ErrAccountBlocked
	}

	sid, err := newSessionID()
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if err := s.store.Save(ctx, sid, user.ID, s.ttl); err != nil {
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.signToken(sid, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("session established")
	return token, user, nil
}

// Resolve turns a cookie token into the request identity. The user record is
// re-read on every call, so role changes and blocks take effect on the next
// request. Every failure path resolves to Anonymous.
func (s *SessionService) Resolve(ctx context.Context, token string) domain.Identity {
	if token == "" {
		return domain.Anonymous()
	}

	sid, ok := s.parseToken(token)
	if !ok {
		return domain.Anonymous()
	}

	userID, err := s.store.Lookup(ctx, sid)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Msg("session lookup failed")
		}
		return domain.Anonymous()
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("identity load failed")
		}
		return domain.Anonymous()
	}

	if user.Status == domain.StatusBlocked {
		// Blocked mid-session: revoke eagerly rather than waiting for expiry.
		if err := s.store.Delete(ctx, sid); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to revoke blocked session")
		}
		return domain.Anonymous()
	}

	return domain.Authenticated(user)
}

// Logout deletes the server-side session record behind the token.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	sid, ok := s.parseToken(token)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Msg("session revoked")
	return nil
}

func (s *SessionService) signToken(sid string, userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"sub": strconv.FormatInt(userID, 10),
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// parseToken verifies the signature and expiry and extracts the session ID.
func (s *SessionService) parseToken(token string) (string, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}

// newSessionID returns a 128-bit random identifier in hex.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
