package database

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/models"
)

// Seed создаёт стартового администратора, если таблица пользователей пуста.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123" // только для разработки
		log.Println("Внимание: ADMIN_PASSWORD не задан, используется дефолтный.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@eduplat.local",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		ImgID:        1,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Создан стартовый администратор:", admin.Email)
	return nil
}
