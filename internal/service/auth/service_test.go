package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	validateErr error
	role        string
	identifyErr error
	validated   int
}

func (p *stubProvider) ValidateCredentials(context.Context, Credentials) error {
	p.validated++
	return p.validateErr
}

func (p *stubProvider) IdentifyUser(context.Context, string) (string, error) {
	return p.role, p.identifyErr
}

func (p *stubProvider) Name() string { return "stub" }

func TestAuthService_Authenticate(t *testing.T) {
	p := &stubProvider{role: "editor"}
	role, err := NewAuthService(p).Authenticate(context.Background(), Credentials{Username: "prensa@congreso.gob.mx", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "editor", role)
}

func TestAuthService_Authenticate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		provider  *stubProvider
		wantErr   error
		validated int
	}{
		{name: "empty password", creds: Credentials{Username: "a"}, provider: &stubProvider{}, wantErr: ErrInvalidCredentials},
		{name: "empty username", creds: Credentials{Password: "a"}, provider: &stubProvider{}, wantErr: ErrInvalidCredentials},
		{name: "rejected", creds: Credentials{Username: "a", Password: "b"}, provider: &stubProvider{validateErr: errors.New("nope")}, wantErr: ErrInvalidCredentials, validated: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAuthService(tt.provider).Authenticate(context.Background(), tt.creds)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.validated, tt.provider.validated)
		})
	}
}

func TestAuthService_IdentifyFailure(t *testing.T) {
	p := &stubProvider{identifyErr: errors.New("user not found")}
	_, err := NewAuthService(p).Authenticate(context.Background(), Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
