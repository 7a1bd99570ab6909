package service

import (
	"context"
	"strconv"

	"github.com/taskly/task-service/internal/core/domain"
	"github.com/taskly/task-service/internal/core/ports"
)

// IdentityService resolves a bearer access token into the authenticated
// user. There is no caching: every call re-verifies the token and re-reads
// the user row, so a deactivation takes effect on the next request.
type IdentityService struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewIdentityService(tokens ports.TokenService, users ports.UserRepository) *IdentityService {
	return &IdentityService{tokens: tokens, users: users}
}

func (s *IdentityService) Resolve(ctx context.Context, accessToken string) (*domain.User, error) {
	subject, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	userID, err := strconv.Atoi(subject)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) ResolveActive(ctx context.Context, accessToken string) (*domain.User, error) {
	user, err := s.Resolve(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	return user, nil
}
