package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGroups(t *testing.T) {
	InitCache()
	require.NotNil(t, Cache)

	SetDashboardCache("dashboard:1:2026-08", "dash")
	SetBudgetCache("budgets:all", "budgets")
	Cache.Wait()

	v, found := GetDashboardCache("dashboard:1:2026-08")
	require.True(t, found)
	assert.Equal(t, "dash", v)

	v, found = GetBudgetCache("budgets:all")
	require.True(t, found)
	assert.Equal(t, "budgets", v)

	// Clearing one group leaves the other intact
	ClearAllDashboardCaches()
	Cache.Wait()
	_, found = GetDashboardCache("dashboard:1:2026-08")
	assert.False(t, found)
	_, found = GetBudgetCache("budgets:all")
	assert.True(t, found)

	ClearAllBudgetCaches()
	Cache.Wait()
	_, found = GetBudgetCache("budgets:all")
	assert.False(t, found)
}

func TestCacheNilGuards(t *testing.T) {
	old := Cache
	Cache = nil
	defer func() { Cache = old }()

	// None of these may panic before InitCache has run.
	SetDashboardCache("k", 1)
	SetBudgetCache("k", 1)
	ClearAllDashboardCaches()
	ClearAllBudgetCaches()

	_, found := GetDashboardCache("k")
	assert.False(t, found)
	_, found = GetBudgetCache("k")
	assert.False(t, found)
}
