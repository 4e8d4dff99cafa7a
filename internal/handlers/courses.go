package handlers

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

// GET /api/courses — список всех курсов (метаданные, без JSON-документов)
func (h *Handler) GetCoursesAPI(w http.ResponseWriter, r *http.Request) {
	var courses []models.Course
	if err := h.DB.Order("id").Find(&courses).Error; err != nil {
		jsonError(w, "Failed to fetch courses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// GET /api/courses/{id} — полный JSON курса + флаг публикации
func (h *Handler) GetCourseByIDAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := h.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(w, "Course not found", http.StatusNotFound)
		} else {
			jsonError(w, "Failed to fetch course", http.StatusInternalServerError)
		}
		return
	}

	doc, err := content.ReadDocument(h.Files.Resolve(course.JSONPath))
	if err != nil {
		log.Println("Failed to read course file:", err)
		jsonError(w, "Failed to read course file", http.StatusInternalServerError)
		return
	}
	doc["is_published"] = course.IsPublished
	writeJSON(w, http.StatusOK, doc)
}

// POST /api/courses/validate-code — проверка решения шага fix-error.
// Шаг здесь НЕ отмечается пройденным, это делает клиент отдельным
// запросом в /api/user/progress.
func (h *Handler) ValidateCodeAPI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req struct {
		CourseID  uint    `json:"courseId"`
		StepIndex int     `json:"stepIndex"`
		UserCode  *string `json:"userCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid courseId or stepIndex", http.StatusBadRequest)
		return
	}
	if req.UserCode == nil {
		jsonError(w, "userCode must be a string", http.StatusBadRequest)
		return
	}

	// 1. Пользователь должен быть записан на курс
	var progress models.UserProgress
	err := h.DB.Where("course_id = ? AND user_id = ?", req.CourseID, user.ID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(w, "User not enrolled in course", http.StatusForbidden)
		} else {
			jsonError(w, "Failed to validate code", http.StatusInternalServerError)
		}
		return
	}

	// 2. Уже пройденный шаг второй раз не проверяем
	for _, done := range progress.CompletedSteps {
		if int(done) == req.StepIndex {
			jsonError(w, "Step already completed", http.StatusBadRequest)
			return
		}
	}

	// 3. Ищем шаг по глобальному индексу в плоском списке
	var course models.Course
	if err := h.DB.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(w, "Course not found", http.StatusNotFound)
		} else {
			jsonError(w, "Failed to validate code", http.StatusInternalServerError)
		}
		return
	}

	doc, err := content.ReadDocument(h.Files.Resolve(course.JSONPath))
	if err != nil {
		log.Println("Failed to read course file:", err)
		jsonError(w, "Failed to read course file", http.StatusInternalServerError)
		return
	}

	step, found := content.StepAt(doc, req.StepIndex)
	stepType, _ := step["type"].(string)
	if !found || stepType != "fix-error" {
		jsonError(w, "Invalid step or not a fix-error type", http.StatusBadRequest)
		return
	}

	correctCode, ok := step["correctCode"].(string)
	if !ok || correctCode == "" {
		jsonError(w, "Correct code not defined for this step", http.StatusInternalServerError)
		return
	}

	// 4. Сравниваем нормализованный код
	isCorrect := content.NormalizeCode(*req.UserCode) == content.NormalizeCode(correctCode)

	message := "Код содержит ошибки"
	if isCorrect {
		message = "Код верный"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"correct": isCorrect,
		"message": message,
	})
}
