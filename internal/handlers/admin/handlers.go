package admin

import (
	"encoding/json"
	"net/http"

	"github.com/s/eduPlat/internal/handlers"
)

// Service — обработчики, требующие роли администратора.
// Сама проверка роли висит на маршрутах через middleware.RequireRole.
type Service struct {
	handlers.Handler
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}
