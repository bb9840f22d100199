package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	db "sk-ims/src/db/sql"
	"sk-ims/src/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func Login(pool *pgxpool.Pool, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		if username == "" || password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByUsername(r.Context(), pool, username)
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Username: %s: %v", username, err)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for username %s from IP %s", username, r.RemoteAddr)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		// Create the JWT token
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":     user.ID,
			"username":    user.Username,
			"fullname":    user.Fullname,
			"role":        user.Role,
			"super_admin": user.Role == models.RoleSuperAdmin,
			"exp":         time.Now().Add(time.Hour * 168).Unix(),
		})

		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.Username, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    tokenString,
			Path:     "/",
			Expires:  time.Now().Add(time.Hour * 168),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Printf("INFO: Successful login - User: %s, ID: %d, Role: %s", user.Username, user.ID, user.Role)
		writeJSON(w, http.StatusOK, map[string]string{
			"token":    tokenString,
			"fullname": user.Fullname,
			"role":     user.Role,
		})
	}
}

func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

// hashPassword is shared by the user management handlers.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
