package content

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/models"
)

// Publish переводит черновик в опубликованные курсы.
// Валидация повторяется даже если проходила при сохранении — публикация
// никогда не обходит её. По успеху строка черновика удаляется, его файл
// удаляется best-effort. Возвращает id курса и сообщение для клиента.
func (m *Manager) Publish(pendingID string) (uint, string, error) {
	var pending models.PendingCourse
	if err := m.DB.First(&pending, "id = ?", pendingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", ErrPendingNotFound
		}
		return 0, "", fmt.Errorf("fetch pending course: %w", err)
	}

	pendingPath := m.Files.Resolve(pending.JSONPath)
	doc, err := ReadDocument(pendingPath)
	if err != nil {
		return 0, "", fmt.Errorf("read pending course file: %w", err)
	}

	if err := ValidateDocument(doc); err != nil {
		return 0, "", err
	}

	// Цель публикации вычислена при сохранении; старые строки без неё
	// разбираем из префикса id.
	targetKind, targetID := pending.TargetKind, pending.TargetID
	if targetKind == "" {
		targetKind, targetID, err = ParseDraftID(pending.ID)
		if err != nil {
			return 0, "", err
		}
	}

	doc["id"] = targetID
	version := pending.Version
	if version == 0 {
		version = 1
	}
	now := time.Now()
	coursePath := m.Files.CoursePath(targetID)

	var message string
	switch targetKind {
	case models.TargetUpdate:
		err := m.DB.Model(&models.Course{}).Where("id = ?", targetID).Updates(map[string]interface{}{
			"title":       docString(doc, "title"),
			"description": docString(doc, "description"),
			"difficulty":  docString(doc, "difficulty"),
			"version":     version,
			"created_at":  now,
		}).Error
		if err != nil {
			return 0, "", fmt.Errorf("update course: %w", err)
		}
		if err := WriteDocument(coursePath, doc); err != nil {
			return 0, "", err
		}
		message = "Course updated successfully"

	case models.TargetNew:
		if err := WriteDocument(coursePath, doc); err != nil {
			return 0, "", err
		}
		course := models.Course{
			ID:          targetID,
			Title:       docString(doc, "title"),
			Description: docString(doc, "description"),
			Difficulty:  docString(doc, "difficulty"),
			CreatorID:   pending.CreatorID,
			JSONPath:    m.Files.CourseRel(targetID),
			IsPublished: true,
			Version:     version,
			CreatedAt:   now,
		}
		if err := m.DB.Create(&course).Error; err != nil {
			return 0, "", fmt.Errorf("insert course: %w", err)
		}
		message = "New course created successfully"

	default:
		return 0, "", ErrInvalidIDPrefix
	}

	if err := m.DB.Delete(&models.PendingCourse{}, "id = ?", pendingID).Error; err != nil {
		return 0, "", fmt.Errorf("delete pending course: %w", err)
	}
	if outcome := RemoveFile(pendingPath); outcome == CleanupFailed {
		log.Printf("Failed to delete pending course file %s (%s)", pendingPath, outcome)
	}

	return targetID, message, nil
}
