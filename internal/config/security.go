package config

import (
	"errors"
	"time"
)

// Auth holds the admin-panel logins and the token signing settings.
type Auth struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"JWT_TTL" envDefault:"1h"`
	AdminUser      string        `env:"ADMIN_USER"`
	AdminPassword  string        `env:"ADMIN_USER_PASSWORD"`
	EditorUser     string        `env:"EDITOR_USER"`
	EditorPassword string        `env:"EDITOR_USER_PASSWORD"`
}

// minSecretLength is the HS256 key size in bytes.
const minSecretLength = 32

func (a Auth) Validate() error {
	if len(a.JWTSecret) < minSecretLength {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if a.TokenTTL <= 0 || a.TokenTTL > 24*time.Hour {
		return errors.New("JWT_TTL must be between 0 and 24h")
	}
	return nil
}
