package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/sk_ims")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://sk.example.org ,")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/sk_ims", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, []string{"http://localhost:5173", "https://sk.example.org"}, cfg.AllowedOrigins)
}

func TestGetEnvFallback(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("SK_IMS_TEST_UNSET_KEY", "fallback"))
	t.Setenv("SK_IMS_TEST_SET_KEY", "value")
	assert.Equal(t, "value", getEnv("SK_IMS_TEST_SET_KEY", "fallback"))
}
