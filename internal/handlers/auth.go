package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/s/eduPlat/internal/auth"
	"github.com/s/eduPlat/internal/models"
	"github.com/s/eduPlat/internal/storage"
)

// POST /api/auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		jsonError(w, "Registration failed: username, email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		ImgID:        1,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		jsonError(w, "Registration failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.setSessionUser(w, r, user); err != nil {
		log.Println("Ошибка сохранения сессии:", err)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": sessionView(user)})
}

// POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", input.Email).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		jsonError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := h.setSessionUser(w, r, user); err != nil {
		log.Println("Ошибка сохранения сессии:", err)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": sessionView(user)})
}

// GET /api/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.GetSessionUser(r)
	if !ok {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// POST /api/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		jsonError(w, "Logout failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// GET /api/auth/google/login
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.Config.AuthCodeURL("random_state")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("state") != "random_state" {
		jsonError(w, "Invalid state", http.StatusUnauthorized)
		return
	}

	info, err := auth.FetchUserInfo(r.Context(), h.Config, r.URL.Query().Get("code"))
	if err != nil {
		log.Println("Ошибка Google OAuth:", err)
		jsonError(w, "Google login failed", http.StatusBadRequest)
		return
	}

	user, err := storage.SaveGoogleUser(h.DB, *info)
	if err != nil {
		jsonError(w, "DB save error", http.StatusInternalServerError)
		return
	}

	if err := h.setSessionUser(w, r, *user); err != nil {
		log.Println("Ошибка сохранения сессии:", err)
	}

	frontend := os.Getenv("FRONTEND_ORIGIN")
	if frontend == "" {
		frontend = "/"
	}
	http.Redirect(w, r, frontend, http.StatusSeeOther)
}

func sessionView(user models.User) models.SessionUser {
	return models.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		ImgID:    user.ImgID,
	}
}
