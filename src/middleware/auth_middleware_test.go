package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sk-ims/src/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, user models.AuthUser) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"fullname": user.Fullname,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "xyz"})
	assert.Equal(t, "xyz", TokenFromRequest(r))
}

func TestParseToken(t *testing.T) {
	want := models.AuthUser{ID: 7, Username: "tess", Fullname: "Tess Ramos", Role: models.RoleTreasurer}
	got, err := ParseToken(signToken(t, want), testSecret)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseTokenRejectsBadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"role":    models.RoleTreasurer,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	_, err := ParseToken(signToken(t, models.AuthUser{ID: 1, Role: "intern"}), testSecret)
	assert.Error(t, err)
}

func TestJWTAuthMiddleware(t *testing.T) {
	var seen models.AuthUser
	handler := JWTAuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	// No token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token
	user := models.AuthUser{ID: 3, Username: "sec", Fullname: "Sec", Role: models.RoleSecretary}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, user))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, seen)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(models.RoleTreasurer, models.RoleChairman)(ok)

	serve := func(user models.AuthUser) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r = r.WithContext(ContextWithUser(r.Context(), user))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(models.AuthUser{ID: 1, Role: models.RoleTreasurer}))
	assert.Equal(t, http.StatusOK, serve(models.AuthUser{ID: 2, Role: models.RoleChairman}))
	assert.Equal(t, http.StatusForbidden, serve(models.AuthUser{ID: 3, Role: models.RoleSecretary}))

	// super_admin passes every gate
	assert.Equal(t, http.StatusOK, serve(models.AuthUser{ID: 4, Role: models.RoleSuperAdmin}))

	// No identity at all
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadOnlyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ReadOnlyMiddleware(true)(ok)

	// GETs pass
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Writes are frozen
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Login stays open
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// super_admin keeps write access
	r := httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil)
	r = r.WithContext(ContextWithUser(r.Context(), models.AuthUser{ID: 1, Role: models.RoleSuperAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
