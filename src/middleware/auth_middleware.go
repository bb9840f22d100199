package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"sk-ims/src/models"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userKey contextKey = "auth_user"

// TokenFromRequest pulls the session token from the Authorization header or,
// for browser form submissions, the token cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

// ParseToken validates the JWT against the signing secret and returns the
// identity it carries.
func ParseToken(tokenString, secret string) (models.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.AuthUser{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.AuthUser{}, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return models.AuthUser{}, fmt.Errorf("invalid token claims")
	}
	username, _ := claims["username"].(string)
	fullname, _ := claims["fullname"].(string)
	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(role) {
		return models.AuthUser{}, fmt.Errorf("invalid token claims")
	}

	return models.AuthUser{
		ID:       int(userID),
		Username: username,
		Fullname: fullname,
		Role:     role,
	}, nil
}

func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := TokenFromRequest(r)
			if tokenString == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}

			user, err := ParseToken(tokenString, secret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole gates a route group to an allow-list of roles. super_admin
// passes every gate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			if !user.IsSuperAdmin() && !allowed[user.Role] {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithUser(ctx context.Context, user models.AuthUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the verified identity the auth middleware attached to
// the request.
func CurrentUser(r *http.Request) (models.AuthUser, bool) {
	user, ok := r.Context().Value(userKey).(models.AuthUser)
	return user, ok
}
