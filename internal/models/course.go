package models

import "time"

// Course (Опубликованный курс)
// Само содержимое курса лежит в JSON-файле, в БД только метаданные и путь.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	CreatorID   uint      `json:"creator_id"`
	JSONPath    string    `gorm:"column:json_path" json:"json_path"`
	IsPublished bool      `json:"is_published"`
	Version     int       `gorm:"default:1" json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// Виды цели публикации черновика. Вычисляются один раз при сохранении
// из префикса идентификатора ("n..." / "c...") и хранятся в строке,
// чтобы публикация не разбирала префикс заново.
const (
	TargetNew    = "new"    // n<id> — будет создан новый курс
	TargetUpdate = "update" // c<id> — обновление существующего курса
)

// PendingCourse (Черновик курса)
// ID — строковый, с префиксом: "n7" — будущий курс 7, "c42" — правка курса 42.
type PendingCourse struct {
	ID               string    `gorm:"primaryKey;size:32" json:"id"`
	OriginalCourseID *uint     `json:"original_course_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Difficulty       string    `json:"difficulty"`
	JSONPath         string    `gorm:"column:json_path" json:"json_path"`
	CreatorID        uint      `json:"creator_id"`
	Status           string    `gorm:"size:20" json:"status"`
	TargetKind       string    `gorm:"size:10" json:"target_kind"`
	TargetID         uint      `json:"target_id"`
	Version          int       `gorm:"default:1" json:"version"`
	CreatedAt        time.Time `json:"created_at"`
}
