package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Storing cache keys in concurrent data structures so every cache of a given
// kind can be cleared when its source tables change.
var (
	Cache             *ristretto.Cache
	DashboardCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	BudgetCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// Dashboard cache functions
func SetDashboardCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	DashboardCacheKeys.Lock()
	DashboardCacheKeys.m[cacheKey] = struct{}{}
	DashboardCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetDashboardCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func ClearAllDashboardCaches() {
	if Cache == nil {
		return
	}
	DashboardCacheKeys.Lock()
	for key := range DashboardCacheKeys.m {
		Cache.Del(key)
	}
	DashboardCacheKeys.m = make(map[string]struct{})
	DashboardCacheKeys.Unlock()
}

// Budget cache functions
func SetBudgetCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	BudgetCacheKeys.Lock()
	BudgetCacheKeys.m[cacheKey] = struct{}{}
	BudgetCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetBudgetCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func ClearAllBudgetCaches() {
	if Cache == nil {
		return
	}
	BudgetCacheKeys.Lock()
	for key := range BudgetCacheKeys.m {
		Cache.Del(key)
	}
	BudgetCacheKeys.m = make(map[string]struct{})
	BudgetCacheKeys.Unlock()
}
