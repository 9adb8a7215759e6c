package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
)

type ctxKey string

const ctxUser ctxKey = "user"

// User is the authenticated caller taken from the token claims.
type User struct {
	Subject string
	Role    string
}

// UserFromContext returns the user stored by Authz.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxUser).(User)
	return u, ok
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

// Authz guards every route that is neither a public endpoint nor a public
// read. Those require a valid HS256 bearer token whose role is allowed for
// the method and path.
//
// Public reads pass without a token. When one is sent and valid, the user is
// still stored so handlers can show unpublished rows to staff; a bad token on
// a public read is treated as anonymous.
func Authz(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if IsPublicRead(r.Method, r.URL.Path) {
				if header := r.Header.Get("Authorization"); header != "" {
					if user, err := validateJWT(header, secret); err == nil && checkRolePermission(user.Role, r.Method, r.URL.Path) {
						r = r.WithContext(WithUser(r.Context(), user))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			user, err := validateJWT(r.Header.Get("Authorization"), secret)
			if err != nil {
				observeDenied("token", "", r.Method)
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			allowed := checkRolePermission(user.Role, r.Method, r.URL.Path)
			authzSeconds.Observe(time.Since(start).Seconds())
			if !allowed {
				observeDenied("role", user.Role, r.Method)
				logging.FromContext(r.Context()).Warn("forbidden",
					slog.String("role", user.Role),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func validateJWT(authz string, secret []byte) (User, error) {
	tokenString, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok || tokenString == "" {
		return User{}, errors.New("missing bearer token")
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return User{}, errors.New("token expired")
		}
		return User{}, errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return User{}, errors.New("invalid claims")
	}
	return User{Subject: sub, Role: role}, nil
}
