package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAllBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const cacheKey = "budgets:all"
		if cached, found := cache.GetBudgetCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		budgets, err := db.GetAllBudgets(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets: %v", err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}

		cache.SetBudgetCache(cacheKey, budgets)
		writeJSON(w, http.StatusOK, budgets)
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		cacheKey := fmt.Sprintf("budget:%d", budgetID)
		if cached, found := cache.GetBudgetCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		budget, err := db.GetBudgetByID(r.Context(), pool, budgetID)
		if err != nil {
			log.Printf("ERROR: Budget %d not found: %v", budgetID, err)
			http.Error(w, "budget not found", ledgerErrorStatus(err))
			return
		}

		cache.SetBudgetCache(cacheKey, budget)
		writeJSON(w, http.StatusOK, budget)
	}
}

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Error(w, "budget name is required", http.StatusBadRequest)
			return
		}
		initial, err := models.ParseAmount(r.FormValue("total_amount"))
		if err != nil {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		budget, err := db.CreateBudget(r.Context(), pool, name, initial, user)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", user.ID, err)
			http.Error(w, "failed to create budget", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Created budget %d (%s) by user %d (%s)", budget.ID, budget.Name, user.ID, user.Role)
		writeJSON(w, http.StatusCreated, budget)
	}
}

// GetBudgetActivity lists the newest audit rows for a budget. The optional
// "limit" query parameter caps the page, defaulting to 50.
func GetBudgetActivity(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		if _, err := db.GetBudgetByID(r.Context(), pool, budgetID); err != nil {
			http.Error(w, "budget not found", ledgerErrorStatus(err))
			return
		}

		activity, err := db.GetActivityForBudget(r.Context(), pool, budgetID, limit)
		if err != nil {
			log.Printf("ERROR: Failed to get activity for budget %d: %v", budgetID, err)
			http.Error(w, "failed to get budget activity", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, activity)
	}
}
