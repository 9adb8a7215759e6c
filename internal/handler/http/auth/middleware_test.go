package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{"sub": "prensa@congreso.gob.mx", "role": role, "exp": time.Now().Add(time.Hour).Unix()}
}

func serve(t *testing.T, method, path, token string) (*httptest.ResponseRecorder, *User) {
	t.Helper()
	var seen *User
	h := Authz(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := UserFromContext(r.Context()); ok {
			seen = &u
		}
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w, seen
}

func TestAuthz_PublicPassWithoutToken(t *testing.T) {
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/auth/token"},
		{http.MethodGet, "/api/news"},
		{http.MethodGet, "/uploads/images/a.png"},
	} {
		w, user := serve(t, tc.method, tc.path, "")
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Nil(t, user)
	}
}

func TestAuthz_PublicReadIdentifiesStaff(t *testing.T) {
	editor := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(RoleEditor))

	w, user := serve(t, http.MethodGet, "/api/news/slug/borrador", editor)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.Equal(t, RoleEditor, user.Role)

	w, user = serve(t, http.MethodGet, "/api/news/42", "not.a.token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, user)
}

func TestAuthz_WriteRequiresToken(t *testing.T) {
	w, _ := serve(t, http.MethodPost, "/api/news", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")

	w, _ = serve(t, http.MethodGet, "/api/news-feeds", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthz_Roles(t *testing.T) {
	editor := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(RoleEditor))
	admin := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(RoleAdmin))

	w, user := serve(t, http.MethodPost, "/api/news", editor)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.Equal(t, User{Subject: "prensa@congreso.gob.mx", Role: RoleEditor}, *user)

	w, _ = serve(t, http.MethodPut, "/api/homepage-config", editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = serve(t, http.MethodGet, "/api/news-feeds", editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = serve(t, http.MethodPut, "/api/homepage-config", admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthz_RejectsBadTokens(t *testing.T) {
	expired := validClaims(RoleAdmin)
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExp := validClaims(RoleAdmin)
	delete(noExp, "exp")
	noRole := validClaims(RoleAdmin)
	delete(noRole, "role")

	tests := map[string]string{
		"expired":      signToken(t, jwt.SigningMethodHS256, testSecret, expired),
		"no exp":       signToken(t, jwt.SigningMethodHS256, testSecret, noExp),
		"no role":      signToken(t, jwt.SigningMethodHS256, testSecret, noRole),
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("another-secret-of-enough-length!"), validClaims(RoleAdmin)),
		"hs512":        signToken(t, jwt.SigningMethodHS512, testSecret, validClaims(RoleAdmin)),
		"garbage":      "not.a.token",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			w, _ := serve(t, http.MethodDelete, "/api/news/1", tok)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthz_NoneAlgorithm(t *testing.T) {
	tok := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims(RoleAdmin))
	w, _ := serve(t, http.MethodPost, "/api/news", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserFromContext_Missing(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}
