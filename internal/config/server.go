package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server is the API process configuration.
type Server struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// MaxBodyBytes bounds JSON bodies; uploads have their own limit.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	// SwaggerEnabled mounts /swagger/.
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED" envDefault:"true"`
	Version        string `env:"VERSION" envDefault:"dev"`
	// TraceSampleRatio is the share of root traces that are sampled.
	TraceSampleRatio float64 `env:"TRACE_SAMPLE_RATIO" envDefault:"0.1"`

	Auth      Auth
	Upload    Upload
	CORS      CORS
	RateLimit RateLimit
	Notify    Notify
}

type Upload struct {
	Dir        string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	BaseURL    string `env:"UPLOAD_BASE_URL" envDefault:"/uploads"`
	PolicyFile string `env:"UPLOAD_POLICY_FILE"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"300"`
}

type RateLimit struct {
	Enabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Limit   int           `env:"RATE_LIMIT_REQUESTS" envDefault:"300"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	// AuthLimit applies to POST /auth/token only.
	AuthLimit int `env:"RATE_LIMIT_AUTH_REQUESTS" envDefault:"10"`
	// TrustProxy makes the client IP come from X-Forwarded-For / X-Real-IP.
	TrustProxy     bool     `env:"RATE_LIMIT_TRUST_PROXY" envDefault:"false"`
	TrustedProxies []string `env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

// Notify configures stream status webhooks.
type Notify struct {
	DiscordEnabled    bool          `env:"DISCORD_ENABLED"`
	DiscordWebhookURL string        `env:"DISCORD_WEBHOOK_URL"`
	SlackEnabled      bool          `env:"SLACK_ENABLED"`
	SlackWebhookURL   string        `env:"SLACK_WEBHOOK_URL"`
	Timeout           time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
	MaxConcurrent     int           `env:"NOTIFY_MAX_CONCURRENT" envDefault:"10"`
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv fills target from the environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer parses and validates the API configuration.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Server) Validate() error {
	var errs []error
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", s.Port))
	}
	if s.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if s.TraceSampleRatio < 0 || s.TraceSampleRatio > 1 {
		errs = append(errs, errors.New("TRACE_SAMPLE_RATIO must be between 0 and 1"))
	}
	if err := s.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.RateLimit.Enabled && (s.RateLimit.Limit <= 0 || s.RateLimit.AuthLimit <= 0 || s.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS, RATE_LIMIT_AUTH_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}
	if s.Notify.DiscordEnabled && s.Notify.DiscordWebhookURL == "" {
		errs = append(errs, errors.New("DISCORD_WEBHOOK_URL is required when DISCORD_ENABLED is true"))
	}
	if s.Notify.SlackEnabled && s.Notify.SlackWebhookURL == "" {
		errs = append(errs, errors.New("SLACK_WEBHOOK_URL is required when SLACK_ENABLED is true"))
	}
	return errors.Join(errs...)
}
