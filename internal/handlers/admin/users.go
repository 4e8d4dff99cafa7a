package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/s/eduPlat/internal/models"
)

// GET /api/user — список пользователей
func (s *Service) GetUsersAPI(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := s.DB.Order("created_at desc").Find(&users).Error; err != nil {
		jsonError(w, "Failed to fetch users: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// PATCH /api/user/{id} — смена роли
func (s *Service) UpdateUserRoleAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleCreator && req.Role != models.RoleUser {
		jsonError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	result := s.DB.Model(&models.User{}).Where("id = ?", id).Update("role", req.Role)
	if result.Error != nil {
		jsonError(w, "Failed to update user role: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	var user models.User
	s.DB.First(&user, id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// DELETE /api/user/{id} — вместе с прогрессом пользователя
func (s *Service) DeleteUserAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := s.DB.Where("user_id = ?", id).Delete(&models.UserProgress{}).Error; err != nil {
		jsonError(w, "Failed to delete user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		jsonError(w, "Failed to delete user: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
