package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification (Уведомление)
// Metadata — произвольный JSON; пути загруженных вложений складываются
// туда же, в metadata.attachments.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      string         `gorm:"size:50" json:"type"`
	Message   string         `json:"message"`
	UserID    *uint          `json:"user_id"`
	Metadata  datatypes.JSON `json:"metadata"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}
