package handlers

import (
	"log"
	"net/http"

	cache "sk-ims/src/db"

	"github.com/go-chi/chi/v5"
)

// ClearCache drops a cache group by name: "dashboard", "budgets" or "all".
func ClearCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "cache_name")
		switch name {
		case "dashboard":
			cache.ClearAllDashboardCaches()
		case "budgets":
			cache.ClearAllBudgetCaches()
		case "all":
			cache.ClearAllDashboardCaches()
			cache.ClearAllBudgetCaches()
		default:
			http.Error(w, "unknown cache name", http.StatusBadRequest)
			return
		}

		log.Printf("INFO: Cleared %s cache(s)", name)
		writeJSON(w, http.StatusOK, map[string]string{"message": "cache cleared: " + name})
	}
}
