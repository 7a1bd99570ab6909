package ports

import "time"

// TokenService issues and verifies signed, time-limited tokens carrying a
// subject identifier. Access and refresh tokens are signed with distinct
// secrets: a token of one class never verifies as the other.
type TokenService interface {
	// IssueAccess signs an access token for subject. A non-positive ttl
	// falls back to the service default.
	IssueAccess(subject string, ttl time.Duration) (string, error)
	IssueRefresh(subject string, ttl time.Duration) (string, error)
	// VerifyAccess returns the subject claim, or domain.ErrInvalidToken /
	// domain.ErrTokenExpired.
	VerifyAccess(token string) (string, error)
	VerifyRefresh(token string) (string, error)
}
