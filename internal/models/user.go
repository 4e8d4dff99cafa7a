package models

import "time"

// User (Пользователь платформы)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `gorm:"index" json:"-"` // пусто, если вход по паролю
	Role         string    `gorm:"size:20;default:user" json:"role"`
	ImgID        int       `json:"img_id"` // аватарка 1-4
	CreatedAt    time.Time `json:"created_at"`
}

// Роли, используемые по всему приложению.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// SessionUser — данные авторизованного пользователя из сессии.
// Передаётся в обработчики явно, а не читается из глобального состояния.
type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ImgID    int    `json:"img"`
}

func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
