package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/lib/pq"
	"gorm.io/gorm/clause"

	"github.com/s/eduPlat/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// GET /api/user/progress — прогресс по всем курсам: {course_id: [шаги]}
func (h *Handler) GetProgressAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var rows []models.UserProgress
	if err := h.DB.Where("user_id = ?", user.ID).Find(&rows).Error; err != nil {
		jsonError(w, "Failed to fetch progress: "+err.Error(), http.StatusInternalServerError)
		return
	}

	progress := make(map[uint]pq.Int64Array, len(rows))
	for _, row := range rows {
		progress[row.CourseID] = row.CompletedSteps
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

// POST /api/user/progress — upsert по паре (user_id, course_id)
func (h *Handler) UpdateProgressAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req struct {
		CourseID       uint          `json:"courseId"`
		CompletedSteps pq.Int64Array `json:"completedSteps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	row := models.UserProgress{
		UserID:         user.ID,
		CourseID:       req.CourseID,
		CompletedSteps: req.CompletedSteps,
	}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_steps"}),
	}).Create(&row).Error
	if err != nil {
		jsonError(w, "Failed to update progress: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PATCH /api/user — обновление собственного профиля
func (h *Handler) UpdateProfileAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Img      *int   `json:"img"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" && req.Email == "" && req.Img == nil {
		jsonError(w, "No fields provided for update", http.StatusBadRequest)
		return
	}

	if req.Username != "" && (len(req.Username) < 3 || len(req.Username) > 50) {
		jsonError(w, "Invalid username: must be 3-50 characters", http.StatusBadRequest)
		return
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		jsonError(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if req.Img != nil && (*req.Img < 1 || *req.Img > 4) {
		jsonError(w, "Invalid avatar: must be a number between 1 and 4", http.StatusBadRequest)
		return
	}

	// Обновляем только присланные поля
	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Img != nil {
		updates["img_id"] = *req.Img
	}

	result := h.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		jsonError(w, "Failed to update profile: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	var updated models.User
	if err := h.DB.First(&updated, user.ID).Error; err != nil {
		jsonError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	// Сессия должна отражать новый профиль сразу
	if err := h.setSessionUser(w, r, updated); err != nil {
		jsonError(w, "Session error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}
