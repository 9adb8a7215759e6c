package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
	authservice "github.com/mcarbmont89/full-congreso-sub000/internal/service/auth"
)

// DefaultTokenTTL is the lifetime of issued tokens.
const DefaultTokenTTL = time.Hour

type loginRequest struct {
	Email    string `json:"email" example:"admin@congreso.gob.mx"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role      string `json:"role" example:"editor"`
	ExpiresAt int64  `json:"expires_at" example:"1767225600"`
}

// TokenHandler issues tokens for admin-panel logins.
type TokenHandler struct {
	Svc    *authservice.AuthService
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// ServeHTTP handles POST /auth/token.
//
// @Summary      Get a JWT
// @Description  Exchanges the admin-panel login for a signed HS256 token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login"
// @Success      200 {object} tokenResponse
// @Failure      400 {string} string "Bad request"
// @Failure      401 {string} string "Unauthorized"
// @Failure      429 {string} string "Too many requests"
// @Router       /auth/token [post]
func (h TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())

	fail := func(code int, reason string, err error) {
		logger.Warn("authentication failed",
			slog.String("reason", reason),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		observeLogin("", err, time.Since(start))
		respond.SafeError(w, code, err)
	}

	var req loginRequest
	if err := crud.Decode(r, &req); err != nil {
		fail(http.StatusBadRequest, "invalid_request", err)
		return
	}

	role, err := h.Svc.Authenticate(r.Context(), authservice.Credentials{Username: req.Email, Password: req.Password})
	if err != nil {
		reason := "invalid_credentials"
		if !errors.Is(err, authservice.ErrInvalidCredentials) {
			reason = "role_identification_failed"
		}
		fail(http.StatusUnauthorized, reason, errors.New("unauthorized"))
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	ttl := h.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	exp := now().Add(ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  req.Email,
		"role": role,
		"exp":  exp.Unix(),
	}).SignedString(h.Secret)
	if err != nil {
		observeLogin(role, err, time.Since(start))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	observeLogin(role, nil, time.Since(start))
	logger.Info("authentication successful",
		slog.String("user", req.Email),
		slog.String("role", role))
	respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, Role: role, ExpiresAt: exp.Unix()})
}
