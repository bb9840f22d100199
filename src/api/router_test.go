package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sk-ims/src/config"
	"sk-ims/src/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(nil, config.Config{
		JWTSecret:      testSecret,
		UploadDir:      t.TempDir(),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  1,
		"username": "user",
		"fullname": "User",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestHealth(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter(t)
	for _, path := range []string{"/api/dashboard", "/api/projects", "/api/budgets", "/api/admin/users"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLedgerWritesAreRoleGated(t *testing.T) {
	router := testRouter(t)

	// The secretary can read the ledger but not write to it.
	r := httptest.NewRequest(http.MethodPost, "/api/budgets", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleSecretary))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The treasurer cannot approve entries.
	r = httptest.NewRequest(http.MethodPost, "/api/budgets/1/entries/2/approve", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleTreasurer))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutesForbiddenForCouncilRoles(t *testing.T) {
	router := testRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleChairman))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	// Unknown origins get no allow header
	r = httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	r.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, "", rec.Header().Get("Access-Control-Allow-Origin"))
}
