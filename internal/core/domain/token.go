package domain

import (
	"errors"
	"fmt"
)

// TokenTypeBearer is the only token type this service issues.
const TokenTypeBearer = "bearer"

var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired wraps ErrInvalidToken so callers matching on
// errors.Is(err, ErrInvalidToken) treat both cases identically.
var ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)

// TokenPair is the credential bundle returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
