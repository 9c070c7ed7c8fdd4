package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Street   string
	Zip      string
	City     string
}

// SessionToken is handed to the cookie layer after a login or signup.
// RawToken is the only copy of the unhashed value.
type SessionToken struct {
	RawToken  string
	ExpiresAt time.Time
}

type Service interface {
	// Signup creates a customer and its portal account in one
	// transaction. The email is normalized before use as login.
	Signup(ctx context.Context, req SignupRequest) (*Customer, *Account, error)

	// Authenticate verifies a login/password pair against the stored
	// hash and returns the matching active account.
	Authenticate(ctx context.Context, login, password string) (*Account, error)

	// StartSession issues a random session token for the account and
	// persists its hash.
	StartSession(ctx context.Context, accountID snowflake.ID) (*SessionToken, error)

	// ResolveSession maps a raw cookie token back to its active
	// account. Unknown, expired or revoked tokens are ErrInvalidSession.
	ResolveSession(ctx context.Context, rawToken string) (*Account, error)

	// EndSession revokes the session behind a raw cookie token.
	EndSession(ctx context.Context, rawToken string) error

	GetCustomer(ctx context.Context, id snowflake.ID) (*Customer, error)
}

var (
	ErrAccountExists      = errors.New("account_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")
	ErrNotFound           = errors.New("not_found")
)
