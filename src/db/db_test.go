package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig("postgres://sk:pw@localhost:5432/sk_ims")
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, "sk_ims", cfg.ConnConfig.Database)
}

func TestPoolConfigRejectsBadURL(t *testing.T) {
	_, err := poolConfig("://not-a-url")
	assert.Error(t, err)
}
