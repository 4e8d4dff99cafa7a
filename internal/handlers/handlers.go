package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/s/eduPlat/internal/content"
	"github.com/s/eduPlat/internal/models"
)

const sessionName = "session"

type Handler struct {
	DB      *gorm.DB
	Store   *sessions.CookieStore
	Config  *oauth2.Config // Google OAuth; nil, если не настроен
	Content *content.Manager
	Files   *content.Store
}

func NewHandler(db *gorm.DB, store *sessions.CookieStore, config *oauth2.Config, files *content.Store) *Handler {
	return &Handler{
		DB:      db,
		Store:   store,
		Config:  config,
		Content: content.NewManager(db, files),
		Files:   files,
	}
}

// GetSessionUser достаёт авторизованного пользователя из сессии.
// Дальше он передаётся явно, глобального состояния нет.
func (h *Handler) GetSessionUser(r *http.Request) (models.SessionUser, bool) {
	session, err := h.Store.Get(r, sessionName)
	if err != nil {
		return models.SessionUser{}, false
	}

	val := session.Values["user_id"]
	var userID uint
	if v, ok := val.(uint); ok {
		userID = v
	} else if v, ok := val.(int); ok {
		userID = uint(v)
	} else if v, ok := val.(float64); ok {
		userID = uint(v)
	} else {
		return models.SessionUser{}, false
	}
	if userID == 0 {
		return models.SessionUser{}, false
	}

	imgID, _ := session.Values["img_id"].(int)
	return models.SessionUser{
		ID:       userID,
		Username: toString(session.Values["username"]),
		Email:    toString(session.Values["email"]),
		Role:     toString(session.Values["role"]),
		ImgID:    imgID,
	}, true
}

// setSessionUser кладёт пользователя в куку-сессию.
func (h *Handler) setSessionUser(w http.ResponseWriter, r *http.Request, user models.User) error {
	session, _ := h.Store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.Values["email"] = user.Email
	session.Values["role"] = user.Role
	session.Values["img_id"] = user.ImgID
	return session.Save(r, w)
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}
