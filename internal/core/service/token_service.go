package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskly/task-service/internal/core/domain"
)

const (
	// defaultAccessTTL applies when the caller passes no explicit TTL.
	defaultAccessTTL = 15 * time.Minute
	// defaultRefreshTTL applies when the caller passes no explicit TTL.
	defaultRefreshTTL = 3 * 24 * time.Hour
)

// TokenConfig holds the two independent signing secrets and an injectable
// clock. The secrets are read once at startup and never rotated within a
// process lifetime.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	// Now is the clock used for issuing and verifying. Defaults to
	// time.Now when nil.
	Now func() time.Time
}

// TokenService issues and verifies HS256-signed access and refresh tokens.
// The two token classes use distinct secrets: compromise of one secret does
// not grant the capability of the other class, and an access token can never
// be replayed as a refresh token. Verification applies no leeway.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		now:           now,
	}
}

func (s *TokenService) IssueAccess(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return s.sign(subject, ttl, s.accessSecret)
}

func (s *TokenService) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}
	return s.sign(subject, ttl, s.refreshSecret)
}

func (s *TokenService) VerifyAccess(token string) (string, error) {
	return s.verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) sign(subject string, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(s.now().UTC().Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (s *TokenService) verify(token string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
