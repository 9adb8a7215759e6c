package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	authservice "github.com/mcarbmont89/full-congreso-sub000/internal/service/auth"
)

// Account is one configured login.
type Account struct {
	Username string
	Password string
	Role     string
}

// MultiUserAuthProvider checks logins against the admin account and the
// optional editor account loaded from the environment.
type MultiUserAuthProvider struct {
	accounts []Account
}

// NewMultiUserAuthProvider skips accounts with an empty user name, which is
// how a disabled editor login is represented.
func NewMultiUserAuthProvider(accounts ...Account) *MultiUserAuthProvider {
	p := &MultiUserAuthProvider{}
	for _, a := range accounts {
		if a.Username != "" {
			p.accounts = append(p.accounts, a)
		}
	}
	return p
}

// ValidateCredentials compares against every account in constant time so the
// response time does not reveal which user names exist.
func (p *MultiUserAuthProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	matched := 0
	for _, a := range p.accounts {
		userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(a.Username))
		passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(a.Password))
		matched |= userMatch & passMatch
	}
	if matched != 1 {
		return errors.New("invalid credentials")
	}
	return nil
}

func (p *MultiUserAuthProvider) IdentifyUser(_ context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("username must not be empty")
	}
	for _, a := range p.accounts {
		if subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1 {
			return a.Role, nil
		}
	}
	return "", fmt.Errorf("user %w", errUserNotFound)
}

var errUserNotFound = errors.New("not found")

func (p *MultiUserAuthProvider) Name() string {
	return "multi-user"
}
