package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/content"
	"github.com/s/eduPlat/internal/models"
)

// PATCH /api/courses/{id} — переключение флага публикации
func (s *Service) UpdateCourseAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var req struct {
		IsPublished *bool `json:"is_published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsPublished == nil {
		jsonError(w, "is_published must be a boolean", http.StatusBadRequest)
		return
	}

	result := s.DB.Model(&models.Course{}).Where("id = ?", id).Update("is_published", *req.IsPublished)
	if result.Error != nil {
		jsonError(w, "Failed to update course", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}

	var course models.Course
	s.DB.First(&course, id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"course": course})
}

// DELETE /api/courses/{id} — строка + best-effort удаление JSON-файла
func (s *Service) DeleteCourseAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := s.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(w, "Course not found", http.StatusNotFound)
		} else {
			jsonError(w, "Failed to delete course", http.StatusInternalServerError)
		}
		return
	}

	if err := s.DB.Delete(&models.Course{}, id).Error; err != nil {
		jsonError(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}

	path := s.Files.Resolve(course.JSONPath)
	if outcome := content.RemoveFile(path); outcome == content.CleanupFailed {
		log.Printf("Failed to delete JSON file %s (%s)", path, outcome)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

// GET /api/courses/{id}/participants-count
func (s *Service) ParticipantsCountAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var count int64
	err = s.DB.Model(&models.UserProgress{}).
		Where("course_id = ?", id).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		jsonError(w, "Failed to fetch participants count", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
