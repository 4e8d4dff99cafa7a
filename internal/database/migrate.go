package database

import (
	"github.com/s/eduPlat/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.PendingCourse{},
		&models.UserProgress{},
		&models.Notification{},
	)
}
