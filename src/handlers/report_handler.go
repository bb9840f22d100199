package handlers

import (
	"log"
	"net/http"
	"strings"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAllReports(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := db.GetAllReports(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get reports: %v", err)
			http.Error(w, "failed to get reports", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, reports)
	}
}

func GetReportByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := idParam(r, "report_id")
		if err != nil {
			http.Error(w, "invalid report id", http.StatusBadRequest)
			return
		}
		report, err := db.GetReportByID(r.Context(), pool, reportID)
		if err != nil {
			log.Printf("ERROR: Report %d not found: %v", reportID, err)
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func CreateReport(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		rtype := strings.TrimSpace(r.FormValue("type"))
		reportedFor := strings.TrimSpace(r.FormValue("reported_for"))
		notes := strings.TrimSpace(r.FormValue("notes"))
		missing := util.RequireFields(map[string]string{
			"type":         rtype,
			"reported_for": reportedFor,
		}, "type", "reported_for")
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		filename, allowed, err := saveFormFile(r, uploadDir, "reports")
		if err != nil {
			log.Printf("ERROR: Failed to save report upload: %v", err)
			http.Error(w, "failed to save file", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "file type not allowed", http.StatusBadRequest)
			return
		}

		report, err := db.CreateReport(r.Context(), pool, rtype, filename, reportedFor, notes, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to create report for user %d: %v", user.ID, err)
			http.Error(w, "failed to create report", http.StatusInternalServerError)
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Registered report %d (%s) by user %d", report.ID, report.Type, user.ID)
		writeJSON(w, http.StatusCreated, report)
	}
}

func UpdateReport(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := idParam(r, "report_id")
		if err != nil {
			http.Error(w, "invalid report id", http.StatusBadRequest)
			return
		}

		rtype := strings.TrimSpace(r.FormValue("type"))
		reportedFor := strings.TrimSpace(r.FormValue("reported_for"))
		notes := strings.TrimSpace(r.FormValue("notes"))
		missing := util.RequireFields(map[string]string{
			"type":         rtype,
			"reported_for": reportedFor,
		}, "type", "reported_for")
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		filename, allowed, err := saveFormFile(r, uploadDir, "reports")
		if err != nil {
			log.Printf("ERROR: Failed to save report upload: %v", err)
			http.Error(w, "failed to save file", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "file type not allowed", http.StatusBadRequest)
			return
		}

		report, err := db.UpdateReport(r.Context(), pool, reportID, rtype, reportedFor, notes, filename)
		if err != nil {
			log.Printf("ERROR: Failed to update report %d: %v", reportID, err)
			http.Error(w, "failed to update report", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Updated report %d", reportID)
		writeJSON(w, http.StatusOK, report)
	}
}

func DeleteReport(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := idParam(r, "report_id")
		if err != nil {
			http.Error(w, "invalid report id", http.StatusBadRequest)
			return
		}

		report, err := db.GetReportByID(r.Context(), pool, reportID)
		if err != nil {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}

		if err := db.DeleteReport(r.Context(), pool, reportID); err != nil {
			log.Printf("ERROR: Failed to delete report %d: %v", reportID, err)
			http.Error(w, "failed to delete report", ledgerErrorStatus(err))
			return
		}

		removeStoredFile(uploadDir, report.Filename)
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Deleted report %d", reportID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "report deleted"})
	}
}
