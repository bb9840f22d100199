package middleware

import "net/http"

// ReadOnlyMiddleware freezes all writes, e.g. while the council transitions
// between terms. super_admin keeps write access, and login stays open.
func ReadOnlyMiddleware(enabled bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/login": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := CurrentUser(r); ok && user.IsSuperAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			if enabled && r.Method != http.MethodGet {
				if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "Read-only mode: only GET requests are allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
