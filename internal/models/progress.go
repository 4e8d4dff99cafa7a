package models

import "github.com/lib/pq"

// UserProgress (Прогресс пользователя по курсу)
// CompletedSteps — глобальные 1-based индексы шагов в плоском списке
// (все шаги всех модулей подряд). Upsert по паре (user_id, course_id).
type UserProgress struct {
	UserID         uint          `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CourseID       uint          `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	CompletedSteps pq.Int64Array `gorm:"type:integer[]" json:"completed_steps"`
}
