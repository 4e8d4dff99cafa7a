package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/s/eduPlat/internal/handlers"
	"github.com/s/eduPlat/internal/models"
)

// RequireAuth создает Middleware, пропускающее только авторизованных.
func RequireAuth(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := h.GetSessionUser(r); !ok {
				jsonError(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// RequireRole создает Middleware, требующее определенной роли.
// Роль берётся из сессии — отдельного похода в БД нет.
func RequireRole(h *handlers.Handler, requiredRole string) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := h.GetSessionUser(r)
			if !ok {
				jsonError(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			if user.Role != requiredRole {
				jsonError(w, "Access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// RequireAdmin — сокращение для самого частого случая.
func RequireAdmin(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(h, models.RoleAdmin)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
