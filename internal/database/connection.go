package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Строка подключения приходит из .env через переменную окружения
	dsn := os.Getenv("DATABASE_URL")

	// Локальный дефолт на случай, если .env не проброшен
	if dsn == "" {
		dsn = "host=db user=postgres password=1234 dbname=eduplat port=5432 sslmode=disable"
	}

	var db *gorm.DB
	var err error

	// Docker-база иногда «просыпается» пару секунд, поэтому несколько попыток
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("Успешное подключение к базе данных")
			return db, nil
		}

		log.Printf("Попытка подключения %d не удалась, ждем... (%v)", i+1, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("не удалось подключиться к БД после нескольких попыток: %w", err)
}
