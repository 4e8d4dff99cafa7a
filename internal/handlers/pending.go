package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/content"
	"github.com/s/eduPlat/internal/models"
)

// GET /api/pending-courses — черновики текущего пользователя
func (h *Handler) GetPendingCoursesAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var courses []models.PendingCourse
	if err := h.DB.Where("creator_id = ?", user.ID).Find(&courses).Error; err != nil {
		log.Println("Failed to fetch pending courses:", err)
		jsonError(w, "Failed to fetch pending courses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// GET /api/pending-courses/{id} — полный документ черновика
func (h *Handler) GetPendingCourseAPI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var pending models.PendingCourse
	if err := h.DB.First(&pending, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(w, "Pending course not found", http.StatusNotFound)
		} else {
			jsonError(w, "Failed to fetch pending course", http.StatusInternalServerError)
		}
		return
	}

	doc, err := content.ReadDocument(h.Files.Resolve(pending.JSONPath))
	if err != nil {
		log.Println("Failed to read pending course file:", err)
		jsonError(w, "Failed to read pending course file", http.StatusInternalServerError)
		return
	}
	doc["version"] = pending.Version
	doc["original_course_id"] = pending.OriginalCourseID
	writeJSON(w, http.StatusOK, doc)
}

// POST /api/pending-courses — создание или обновление черновика.
// Клиент узнаёт об исходе только из возвращённой строки (с новой версией).
func (h *Handler) SavePendingCourseAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var patch content.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	row, err := h.Content.Save(user, patch)
	if err != nil {
		if content.IsValidationError(err) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Failed to save pending course:", err)
		jsonError(w, "Failed to save pending course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"course": row})
}
