package handlers

import (
	"log"
	"net/http"
	"strconv"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetBudgetAllocations(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		if _, err := db.GetBudgetByID(r.Context(), pool, budgetID); err != nil {
			http.Error(w, "budget not found", ledgerErrorStatus(err))
			return
		}

		allocations, err := db.GetAllocationsForBudget(r.Context(), pool, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to get allocations for budget %d: %v", budgetID, err)
			http.Error(w, "failed to get allocations", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, allocations)
	}
}

func RequestAllocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		projectID, err := strconv.Atoi(r.FormValue("project_id"))
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}
		amount, err := models.ParseAmount(r.FormValue("amount"))
		if err != nil || amount <= 0 {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		if _, err := db.GetProjectByID(r.Context(), pool, projectID); err != nil {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		allocation, err := db.RequestAllocation(r.Context(), pool, projectID, budgetID, amount, user)
		if err != nil {
			log.Printf("ERROR: Failed to request allocation of budget %d to project %d by user %d: %v", budgetID, projectID, user.ID, err)
			http.Error(w, "failed to request allocation", ledgerErrorStatus(err))
			return
		}

		log.Printf("INFO: Requested allocation %d of budget %d to project %d by user %d", allocation.ID, budgetID, projectID, user.ID)
		writeJSON(w, http.StatusCreated, allocation)
	}
}

func ApproveAllocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		allocationID, err := idParam(r, "allocation_id")
		if err != nil {
			http.Error(w, "invalid allocation id", http.StatusBadRequest)
			return
		}

		allocation, err := db.ApproveAllocation(r.Context(), pool, budgetID, allocationID, user)
		if err != nil {
			log.Printf("ERROR: Failed to approve allocation %d on budget %d by user %d: %v", allocationID, budgetID, user.ID, err)
			http.Error(w, "failed to approve allocation", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Approved allocation %d of budget %d to project %d by user %d", allocationID, budgetID, allocation.ProjectID, user.ID)
		writeJSON(w, http.StatusOK, allocation)
	}
}

func RejectAllocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		allocationID, err := idParam(r, "allocation_id")
		if err != nil {
			http.Error(w, "invalid allocation id", http.StatusBadRequest)
			return
		}

		allocation, err := db.RejectAllocation(r.Context(), pool, budgetID, allocationID, user)
		if err != nil {
			log.Printf("ERROR: Failed to reject allocation %d on budget %d by user %d: %v", allocationID, budgetID, user.ID, err)
			http.Error(w, "failed to reject allocation", ledgerErrorStatus(err))
			return
		}

		log.Printf("INFO: Rejected allocation %d on budget %d by user %d", allocationID, budgetID, user.ID)
		writeJSON(w, http.StatusOK, allocation)
	}
}

func RemoveAllocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		allocationID, err := idParam(r, "allocation_id")
		if err != nil {
			http.Error(w, "invalid allocation id", http.StatusBadRequest)
			return
		}

		if err := db.RemoveAllocation(r.Context(), pool, budgetID, allocationID, user); err != nil {
			log.Printf("ERROR: Failed to remove allocation %d on budget %d by user %d: %v", allocationID, budgetID, user.ID, err)
			http.Error(w, "failed to remove allocation", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Removed allocation %d on budget %d by user %d, balance restored", allocationID, budgetID, user.ID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "allocation removed"})
	}
}
