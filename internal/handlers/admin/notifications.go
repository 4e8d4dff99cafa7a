package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/s/eduPlat/internal/models"
	"github.com/s/eduPlat/internal/storage"
)

// Уведомление вместе с именем адресата для админ-панели
type NotificationView struct {
	models.Notification
	Username *string `json:"username"`
}

// GET /api/notifications
func (s *Service) GetNotificationsAPI(w http.ResponseWriter, r *http.Request) {
	var rows []NotificationView
	err := s.DB.Table("notifications").
		Select("notifications.*, users.username").
		Joins("LEFT JOIN users ON notifications.user_id = users.id").
		Order("notifications.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		jsonError(w, "Failed to fetch notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": rows})
}

// POST /api/notifications — multipart-форма, до 5 вложений (PNG/PDF/DOCX).
// Пути сохранённых файлов попадают в metadata.attachments.
func (s *Service) CreateNotificationAPI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxAttachmentSize); err != nil {
		jsonError(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	notifType := r.FormValue("type")
	message := r.FormValue("message")
	if notifType == "" || message == "" {
		jsonError(w, "Type and message are required", http.StatusBadRequest)
		return
	}

	metadata := map[string]interface{}{}
	if raw := r.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			log.Println("Failed to parse metadata:", err)
			metadata = map[string]interface{}{}
		}
	}

	if files := r.MultipartForm.File["attachments"]; len(files) > 0 {
		paths, err := storage.SaveAttachments(s.Files.UploadsDir(), files)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		metadata["attachments"] = paths
	}

	var userID *uint
	if raw := r.FormValue("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			userID = &v
		}
	}

	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		jsonError(w, "Failed to create notification", http.StatusInternalServerError)
		return
	}

	notification := models.Notification{
		Type:     notifType,
		Message:  message,
		UserID:   userID,
		Metadata: datatypes.JSON(metaJSON),
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		jsonError(w, "Failed to create notification: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notification": notification})
}

// PATCH /api/notifications/{id}
func (s *Service) UpdateNotificationAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	var req struct {
		IsRead *bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsRead == nil {
		jsonError(w, "is_read must be a boolean", http.StatusBadRequest)
		return
	}

	result := s.DB.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", *req.IsRead)
	if result.Error != nil {
		jsonError(w, "Failed to update notification: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "Notification not found", http.StatusNotFound)
		return
	}

	var notification models.Notification
	s.DB.First(&notification, id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"notification": notification})
}

// DELETE /api/notifications/{id}
func (s *Service) DeleteNotificationAPI(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	result := s.DB.Delete(&models.Notification{}, id)
	if result.Error != nil {
		jsonError(w, "Failed to delete notification: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		jsonError(w, "Notification not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}
