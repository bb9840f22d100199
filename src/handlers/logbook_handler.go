package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/models"
	"sk-ims/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// logbookFromForm validates the visitor form. First name, last name and date
// are required; everything else is optional.
func logbookFromForm(r *http.Request) (*models.LogbookEntry, string) {
	missing := util.RequireFields(map[string]string{
		"first_name": r.FormValue("first_name"),
		"last_name":  r.FormValue("last_name"),
		"date":       r.FormValue("date"),
	}, "first_name", "last_name", "date")
	if len(missing) > 0 {
		return nil, "missing required fields: " + strings.Join(missing, ", ")
	}
	date, err := time.Parse("2006-01-02", r.FormValue("date"))
	if err != nil {
		return nil, "invalid date"
	}

	entry := &models.LogbookEntry{
		FirstName:  strings.TrimSpace(r.FormValue("first_name")),
		MiddleName: strings.TrimSpace(r.FormValue("middle_name")),
		LastName:   strings.TrimSpace(r.FormValue("last_name")),
		Sitio:      strings.TrimSpace(r.FormValue("sitio")),
		Date:       date,
		Concern:    strings.TrimSpace(r.FormValue("concern")),
	}
	if v := r.FormValue("time_in"); v != "" {
		entry.TimeIn = &v
	}
	if v := r.FormValue("time_out"); v != "" {
		entry.TimeOut = &v
	}
	return entry, ""
}

func GetAllLogbookEntries(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := db.GetAllLogbookEntries(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get logbook entries: %v", err)
			http.Error(w, "failed to get logbook entries", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func GetSitios() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Sitios)
	}
}

func CreateLogbookEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, msg := logbookFromForm(r)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		created, err := db.CreateLogbookEntry(r.Context(), pool, entry)
		if err != nil {
			log.Printf("ERROR: Failed to create logbook entry: %v", err)
			http.Error(w, "failed to create logbook entry", http.StatusInternalServerError)
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Created logbook entry %d for %s %s", created.ID, created.FirstName, created.LastName)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateLogbookEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := idParam(r, "entry_id")
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		entry, msg := logbookFromForm(r)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateLogbookEntry(r.Context(), pool, entryID, entry)
		if err != nil {
			log.Printf("ERROR: Failed to update logbook entry %d: %v", entryID, err)
			http.Error(w, "failed to update logbook entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Updated logbook entry %d", entryID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteLogbookEntry(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := idParam(r, "entry_id")
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteLogbookEntry(r.Context(), pool, entryID); err != nil {
			log.Printf("ERROR: Failed to delete logbook entry %d: %v", entryID, err)
			http.Error(w, "failed to delete logbook entry", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Deleted logbook entry %d", entryID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "logbook entry deleted"})
	}
}
