package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetBudgetEntries(pool *pgxpool.Pool) http.HandlerFunc {
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

		entries, err := db.GetEntriesForBudget(r.Context(), pool, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to get entries for budget %d: %v", budgetID, err)
			http.Error(w, "failed to get budget entries", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func CreateEntry(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		entryType := strings.TrimSpace(r.FormValue("entry_type"))
		if !models.ValidEntryType(entryType) {
			http.Error(w, "entry type must be increase or decrease", http.StatusBadRequest)
			return
		}
		amount, err := models.ParseAmount(r.FormValue("amount"))
		if err != nil || amount <= 0 {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}
		description := strings.TrimSpace(r.FormValue("description"))
		if description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}

		entryDate := time.Now()
		if v := r.FormValue("entry_date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "invalid entry date", http.StatusBadRequest)
				return
			}
			entryDate = parsed
		}

		var projectID *int
		if v := r.FormValue("project_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid project id", http.StatusBadRequest)
				return
			}
			projectID = &id
		}

		evidence, allowed, err := saveFormFile(r, uploadDir, "budgets")
		if err != nil {
			log.Printf("ERROR: Failed to save entry evidence: %v", err)
			http.Error(w, "failed to save file", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "file type not allowed", http.StatusBadRequest)
			return
		}

		entry, err := db.CreateEntry(r.Context(), pool, models.NewEntry{
			BudgetID:         budgetID,
			EntryType:        entryType,
			Amount:           amount,
			Description:      description,
			EntryDate:        entryDate,
			EvidenceFilename: evidence,
			ProjectID:        projectID,
		}, user)
		if err != nil {
			log.Printf("ERROR: Failed to create %s entry on budget %d by user %d: %v", entryType, budgetID, user.ID, err)
			http.Error(w, "failed to create entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Created %s entry %d (%s) on budget %d by user %d", entry.EntryType, entry.ID, entry.Status, budgetID, user.ID)
		writeJSON(w, http.StatusCreated, entry)
	}
}

func UpdateEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		entryID, err := idParam(r, "entry_id")
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		amount, err := models.ParseAmount(r.FormValue("amount"))
		if err != nil || amount <= 0 {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}
		description := strings.TrimSpace(r.FormValue("description"))
		if description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}
		entryDate := time.Now()
		if v := r.FormValue("entry_date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "invalid entry date", http.StatusBadRequest)
				return
			}
			entryDate = parsed
		}

		entry, err := db.UpdatePendingEntry(r.Context(), pool, budgetID, entryID, amount, description, entryDate, user)
		if err != nil {
			log.Printf("ERROR: Failed to update entry %d on budget %d by user %d: %v", entryID, budgetID, user.ID, err)
			http.Error(w, "failed to update entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		log.Printf("INFO: Updated pending entry %d on budget %d by user %d", entryID, budgetID, user.ID)
		writeJSON(w, http.StatusOK, entry)
	}
}

func ApproveEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		entryID, err := idParam(r, "entry_id")
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		entry, err := db.ApproveEntry(r.Context(), pool, budgetID, entryID, user)
		if err != nil {
			log.Printf("ERROR: Failed to approve entry %d on budget %d by user %d: %v", entryID, budgetID, user.ID, err)
			http.Error(w, "failed to approve entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Approved %s entry %d on budget %d by user %d", entry.EntryType, entryID, budgetID, user.ID)
		writeJSON(w, http.StatusOK, entry)
	}
}

func RejectEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		budgetID, err := idParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		entryID, err := idParam(r, "entry_id")
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		entry, err := db.RejectEntry(r.Context(), pool, budgetID, entryID, user)
		if err != nil {
			log.Printf("ERROR: Failed to reject entry %d on budget %d by user %d: %v", entryID, budgetID, user.ID, err)
			http.Error(w, "failed to reject entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllBudgetCaches()
		log.Printf("INFO: Rejected %s entry %d on budget %d by user %d", entry.EntryType, entryID, budgetID, user.ID)
		writeJSON(w, http.StatusOK, entry)
	}
}
