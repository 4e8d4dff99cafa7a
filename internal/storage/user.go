package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/auth"
	"github.com/s/eduPlat/internal/models"
)

// SaveGoogleUser finds a user by Google ID or email; if found, it updates, otherwise, it creates.
func SaveGoogleUser(db *gorm.DB, info auth.GoogleUserInfo) (*models.User, error) {
	var existing models.User

	result := db.Where("google_id = ?", info.ID).Or("email = ?", info.Email).First(&existing)

	if result.Error == nil {
		// Пользователь найден — обновляем профиль.
		// Роль здесь не трогаем, ей управляет админ.
		updates := map[string]interface{}{
			"google_id": info.ID,
			"email":     info.Email,
			"username":  info.Name,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil

	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		// Новый пользователь — создаём с дефолтной ролью.
		user := models.User{
			GoogleID: info.ID,
			Email:    info.Email,
			Username: info.Name,
			Role:     models.RoleUser,
			ImgID:    1,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil

	} else {
		return nil, result.Error
	}
}
