package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/task-service/internal/core/domain"
	"github.com/taskly/task-service/internal/core/ports"
)

const (
	// loginAccessTTL and loginRefreshTTL are the lifetimes the login flow
	// passes to the token service when no override is configured.
	loginAccessTTL  = 30 * time.Minute
	loginRefreshTTL = 7 * 24 * time.Hour
)

// TokenTTLs overrides the lifetimes of tokens minted at login and refresh.
// Zero values fall back to the built-in defaults.
type TokenTTLs struct {
	Access  time.Duration
	Refresh time.Duration
}

// AuthService orchestrates registration, login and refresh over the user
// repository, the password hasher and the token service. It is stateless
// between calls and safe for concurrent use.
type AuthService struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
	cache      ports.AvailabilityCache // optional, nil disables caching
	logger     zerolog.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	cache ports.AvailabilityCache,
	logger zerolog.Logger,
	ttls TokenTTLs,
) *AuthService {
	if ttls.Access <= 0 {
		ttls.Access = loginAccessTTL
	}
	if ttls.Refresh <= 0 {
		ttls.Refresh = loginRefreshTTL
	}
	return &AuthService{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		cache:      cache,
		logger:     logger,
		accessTTL:  ttls.Access,
		refreshTTL: ttls.Refresh,
	}
}

// Register creates a new account. When both the email and the username
// collide with existing rows, the email conflict is reported.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	// The pre-checks above are racy; unique indexes in storage are the
	// real guard, and the repository translates their violations.
	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Mark(ctx, "username", created.Username)
		s.cache.Mark(ctx, "email", created.Email)
	}

	s.logger.Info().Int("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and returns an access/refresh token pair. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// Deactivation is only reported once the credentials are valid.
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Refresh verifies the refresh token and mints a new access token. The
// presented refresh token is echoed back unchanged: this service does not
// rotate refresh tokens. Every failure mode collapses into
// ErrInvalidCredentials so callers cannot probe for account existence.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	subject, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	userID, err := strconv.Atoi(subject)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	access, err := s.tokens.IssueAccess(strconv.Itoa(user.ID), s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

// CheckAvailability reports whether username and email are both free. The
// cache only ever stores "taken" verdicts: a name that is taken stays taken,
// while availability must always be re-checked against storage.
func (s *AuthService) CheckAvailability(ctx context.Context, username, email string) (bool, error) {
	if username != "" {
		if taken, err := s.fieldTaken(ctx, "username", username, s.users.FindByUsername); err != nil {
			return false, err
		} else if taken {
			return false, nil
		}
	}
	if email != "" {
		if taken, err := s.fieldTaken(ctx, "email", email, s.users.FindByEmail); err != nil {
			return false, err
		} else if taken {
			return false, nil
		}
	}
	return true, nil
}

func (s *AuthService) fieldTaken(
	ctx context.Context,
	field, value string,
	find func(context.Context, string) (*domain.User, error),
) (bool, error) {
	if s.cache != nil {
		if taken, found := s.cache.Get(ctx, field, value); found {
			return taken, nil
		}
	}

	_, err := find(ctx, value)
	switch {
	case err == nil:
		if s.cache != nil {
			s.cache.Mark(ctx, field, value)
		}
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *AuthService) issuePair(userID int) (*domain.TokenPair, error) {
	subject := strconv.Itoa(userID)

	access, err := s.tokens.IssueAccess(subject, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(subject, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}
