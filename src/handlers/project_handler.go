package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"
	"sk-ims/src/models"
	"sk-ims/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// saveFormFile stores an optional "file" upload under uploadDir/subdir and
// returns the relative path kept in the database, or nil when no file was
// sent. A disallowed extension is reported to the caller.
func saveFormFile(r *http.Request, uploadDir, subdir string) (*string, bool, error) {
	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, true, nil
	}
	if err != nil {
		return nil, true, err
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, true, nil
	}
	if !util.AllowedFile(header.Filename) {
		return nil, false, nil
	}

	safe, err := util.SaveUpload(file, header, filepath.Join(uploadDir, subdir))
	if err != nil {
		return nil, true, err
	}
	stored := subdir + "/" + safe
	return &stored, true, nil
}

// removeStoredFile deletes an uploaded file referenced by a deleted row.
// Best-effort: a leftover file only warrants a warning.
func removeStoredFile(uploadDir string, stored *string) {
	if stored == nil || *stored == "" {
		return
	}
	path := filepath.Join(uploadDir, filepath.FromSlash(*stored))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: could not delete file %s: %v", path, err)
	}
}

func GetAllProjects(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := db.GetAllProjects(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get projects: %v", err)
			http.Error(w, "failed to get projects", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, projects)
	}
}

func GetProjectByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := idParam(r, "project_id")
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}
		project, err := db.GetProjectByID(r.Context(), pool, projectID)
		if err != nil {
			log.Printf("ERROR: Project %d not found: %v", projectID, err)
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func CreateProject(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Error(w, "project name is required", http.StatusBadRequest)
			return
		}
		startDate, err := parseDate(r.FormValue("start_date"))
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		endDate, err := parseDate(r.FormValue("end_date"))
		if err != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		details := strings.TrimSpace(r.FormValue("details"))
		status := strings.TrimSpace(r.FormValue("status"))
		if status == "" {
			status = models.ProjectPlanned
		}

		filename, allowed, err := saveFormFile(r, uploadDir, "projects")
		if err != nil {
			log.Printf("ERROR: Failed to save project upload: %v", err)
			http.Error(w, "failed to save file", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "file type not allowed", http.StatusBadRequest)
			return
		}

		project, err := db.CreateProject(r.Context(), pool, name, startDate, endDate, details, status, filename, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to create project for user %d: %v", user.ID, err)
			http.Error(w, "failed to create project", http.StatusInternalServerError)
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Created project %d (%s) by user %d", project.ID, project.Name, user.ID)
		writeJSON(w, http.StatusCreated, project)
	}
}

func UpdateProject(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := idParam(r, "project_id")
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Error(w, "project name is required", http.StatusBadRequest)
			return
		}
		startDate, err := parseDate(r.FormValue("start_date"))
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		endDate, err := parseDate(r.FormValue("end_date"))
		if err != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		details := strings.TrimSpace(r.FormValue("details"))
		status := strings.TrimSpace(r.FormValue("status"))
		if status == "" {
			status = models.ProjectPlanned
		}

		filename, allowed, err := saveFormFile(r, uploadDir, "projects")
		if err != nil {
			log.Printf("ERROR: Failed to save project upload: %v", err)
			http.Error(w, "failed to save file", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "file type not allowed", http.StatusBadRequest)
			return
		}

		project, err := db.UpdateProject(r.Context(), pool, projectID, name, startDate, endDate, details, status, filename)
		if err != nil {
			log.Printf("ERROR: Failed to update project %d: %v", projectID, err)
			http.Error(w, "failed to update project", ledgerErrorStatus(err))
			return
		}

		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Updated project %d", projectID)
		writeJSON(w, http.StatusOK, project)
	}
}

func DeleteProject(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := idParam(r, "project_id")
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}

		project, err := db.GetProjectByID(r.Context(), pool, projectID)
		if err != nil {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		if err := db.DeleteProject(r.Context(), pool, projectID); err != nil {
			log.Printf("ERROR: Failed to delete project %d: %v", projectID, err)
			http.Error(w, "failed to delete project", ledgerErrorStatus(err))
			return
		}

		removeStoredFile(uploadDir, project.Filename)
		cache.ClearAllDashboardCaches()
		log.Printf("INFO: Deleted project %d", projectID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
	}
}
