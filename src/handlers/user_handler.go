package handlers

import (
	"log"
	"net/http"
	"strings"

	db "sk-ims/src/db/sql"
	"sk-ims/src/models"
	"sk-ims/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAllUsers(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := db.GetAllUsers(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get users: %v", err)
			http.Error(w, "failed to get users", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func CreateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullname := strings.TrimSpace(r.FormValue("fullname"))
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		missing := util.RequireFields(map[string]string{
			"fullname": fullname,
			"username": username,
			"password": password,
			"role":     role,
		}, "fullname", "username", "password", "role")
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}
		if !util.ValidateUsername(username) {
			http.Error(w, "username must be between 3 and 30 characters", http.StatusBadRequest)
			return
		}
		if !util.ValidatePassword(password) {
			http.Error(w, "password must be at least 8 characters", http.StatusBadRequest)
			return
		}
		if !models.ValidRole(role) {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}

		hashed, err := hashPassword(password)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", username, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := db.CreateUser(r.Context(), pool, fullname, username, hashed, role)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Username already exists - Username: %s", username)
				http.Error(w, "username already exists", http.StatusConflict)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", username, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created user %s (id %d) with role %s", user.Username, user.ID, user.Role)
		writeJSON(w, http.StatusCreated, user)
	}
}

func UpdateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := idParam(r, "user_id")
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		fullname := strings.TrimSpace(r.FormValue("fullname"))
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		missing := util.RequireFields(map[string]string{
			"fullname": fullname,
			"username": username,
			"role":     role,
		}, "fullname", "username", "role")
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}
		if !models.ValidRole(role) {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}

		// Password is only replaced when a new one was supplied.
		hashed := ""
		if password != "" {
			if !util.ValidatePassword(password) {
				http.Error(w, "password must be at least 8 characters", http.StatusBadRequest)
				return
			}
			if hashed, err = hashPassword(password); err != nil {
				log.Printf("ERROR: Failed to hash password for user %d: %v", userID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		user, err := db.UpdateUser(r.Context(), pool, userID, fullname, username, role, hashed)
		if err != nil {
			log.Printf("ERROR: Failed to update user %d: %v", userID, err)
			http.Error(w, "failed to update user", ledgerErrorStatus(err))
			return
		}

		log.Printf("INFO: Updated user %d", userID)
		writeJSON(w, http.StatusOK, user)
	}
}

func DeleteUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := idParam(r, "user_id")
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteUser(r.Context(), pool, userID); err != nil {
			log.Printf("ERROR: Failed to delete user %d: %v", userID, err)
			http.Error(w, "failed to delete user", ledgerErrorStatus(err))
			return
		}

		log.Printf("INFO: Deleted user %d", userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
	}
}
