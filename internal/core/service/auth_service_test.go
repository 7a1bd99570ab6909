package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/task-service/internal/core/domain"
)

type stubUserRepo struct {
	users  map[int]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) deactivate(id int) {
	if u, ok := r.users[id]; ok {
		u.IsActive = false
	}
}

func newTestAuthService(repo *stubUserRepo, now *time.Time) (*AuthService, *TokenService) {
	tokens := newTestTokenService(now)
	svc := NewAuthService(repo, NewBcryptHasher(), tokens, nil, zerolog.Nop(), TokenTTLs{})
	return svc, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if !user.IsActive {
		t.Fatalf("new accounts must be active")
	}
	if user.PasswordHash == "password1" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
	}
}

func TestAuthService_Register_DuplicateEmailWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password1"); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	// Both username and email collide: email conflict has priority.
	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password2"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Same email, different username: still an email conflict.
	if _, err := svc.Register(context.Background(), "bob", "a@x.com", "password2"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Same username, fresh email: username conflict.
	if _, err := svc.Register(context.Background(), "alice", "b@x.com", "password2"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo, &now)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if pair.TokenType != domain.TokenTypeBearer {
		t.Fatalf("expected bearer token type, got %q", pair.TokenType)
	}

	subject, err := tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if subject != strconv.Itoa(user.ID) {
		t.Fatalf("expected subject %d, got %q", user.ID, subject)
	}

	if _, err := tokens.VerifyRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token does not verify: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestAuthService(newStubUserRepo(), &now)

	if _, err := svc.Login(context.Background(), "nobody", "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DeactivatedAfterCredentialCheck(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.deactivate(user.ID)

	// Correct credentials: deactivation is reported.
	if _, err := svc.Login(context.Background(), "alice", "password1"); !errors.Is(err, domain.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}

	// Wrong password on a deactivated account: credentials fail first.
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials before deactivation check, got %v", err)
	}
}

func TestAuthService_Refresh_EchoesSameRefreshToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo, &now)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	now = now.Add(time.Minute)
	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if refreshed.RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token must be echoed unchanged")
	}
	if refreshed.AccessToken == pair.AccessToken {
		t.Fatalf("expected a newly minted access token")
	}

	subject, err := tokens.VerifyAccess(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("new access token does not verify: %v", err)
	}
	if subject != strconv.Itoa(user.ID) {
		t.Fatalf("expected subject %d, got %q", user.ID, subject)
	}

	// The original access token is unaffected by the refresh.
	if _, err := tokens.VerifyAccess(pair.AccessToken); err != nil {
		t.Fatalf("original access token must remain valid: %v", err)
	}
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	now = now.Add(8 * 24 * time.Hour)
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for expired refresh token, got %v", err)
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A leaked access token must not be usable as a refresh token.
	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_VanishedUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	delete(repo.users, user.ID)

	// A vanished subject is indistinguishable from a bad token.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CheckAvailability(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &now)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := []struct {
		username, email string
		want            bool
	}{
		{"alice", "", false},
		{"", "a@x.com", false},
		{"bob", "b@x.com", true},
		{"bob", "a@x.com", false},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := svc.CheckAvailability(context.Background(), tc.username, tc.email)
		if err != nil {
			t.Fatalf("CheckAvailability(%q, %q) error: %v", tc.username, tc.email, err)
		}
		if got != tc.want {
			t.Fatalf("CheckAvailability(%q, %q) = %v, want %v", tc.username, tc.email, got, tc.want)
		}
	}
}

func TestAuthService_Lifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo, &now)
	identity := NewIdentityService(tokens, repo)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := svc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resolved, err := identity.ResolveActive(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved user %d, registered %d", resolved.ID, user.ID)
	}

	// The refreshed access token resolves to the same identity.
	now = now.Add(20 * time.Minute)
	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	resolved, err = identity.ResolveActive(context.Background(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("resolve of refreshed access failed: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("refreshed token resolved user %d, want %d", resolved.ID, user.ID)
	}
}
