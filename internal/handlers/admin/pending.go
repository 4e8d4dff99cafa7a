package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/eduPlat/internal/content"
)

// POST /api/pending-courses/{id}/publish
func (s *Service) PublishPendingCourseAPI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	courseID, message, err := s.Content.Publish(id)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrPendingNotFound):
			jsonError(w, "Pending course not found", http.StatusNotFound)
		case content.IsValidationError(err):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Println("Failed to publish pending course:", err)
			jsonError(w, "Failed to publish course", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"course_id": courseID,
		"message":   message,
	})
}

// GET /api/pending-courses/course-versions/{id} — предыдущая версия
// черновика; {"version": null}, если её нет.
func (s *Service) PendingCourseVersionAPI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := s.Content.PreviousVersion(id)
	if err != nil {
		if errors.Is(err, content.ErrPendingNotFound) {
			jsonError(w, "Course not found", http.StatusNotFound)
			return
		}
		log.Println("Failed to fetch course version:", err)
		jsonError(w, "Failed to fetch course version", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"version": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"version": doc})
}
