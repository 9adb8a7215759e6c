// Package auth holds the credential check behind the token endpoint. It knows
// nothing about HTTP or JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for any failed login. Callers must not
// tell the client which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Username string
	Password string
}

// AuthProvider checks credentials against one account store.
type AuthProvider interface {
	// ValidateCredentials returns nil when the pair matches an account.
	ValidateCredentials(ctx context.Context, creds Credentials) error
	// IdentifyUser returns the role of a known user name.
	IdentifyUser(ctx context.Context, username string) (string, error)
	Name() string
}

type AuthService struct {
	provider AuthProvider
}

func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// Authenticate validates creds and returns the account's role.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", fmt.Errorf("%w: empty username or password", ErrInvalidCredentials)
	}
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCredentials, s.provider.Name())
	}
	role, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return "", fmt.Errorf("identify user: %w", err)
	}
	return role, nil
}

func (s *AuthService) ProviderName() string {
	return s.provider.Name()
}
