package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/s/eduPlat/internal/auth"
	"github.com/s/eduPlat/internal/content"
	"github.com/s/eduPlat/internal/database"
	"github.com/s/eduPlat/internal/handlers"
	"github.com/s/eduPlat/internal/handlers/admin"
	"github.com/s/eduPlat/internal/middleware"
)

func main() {
	// ---------------------------
	// 0. Загрузка переменных окружения
	// ---------------------------
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: Не удалось загрузить файл .env. Используются системные переменные.")
	}

	// ---------------------------
	// 1. Подключаем GORM (База данных)
	// ---------------------------
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}

	// ---------------------------
	// 2. Миграции и сиды
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Ошибка миграции:", err)
	}
	if err := database.Seed(db); err != nil {
		log.Println("Ошибка сидов (возможно, данные уже есть):", err)
	}

	// ---------------------------
	// 3. Файловое хранилище JSON курсов
	// ---------------------------
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	files, err := content.NewStore(dataDir)
	if err != nil {
		log.Fatal("Ошибка создания каталога данных:", err)
	}

	// ---------------------------
	// 4. Google OAuth (опционально)
	// ---------------------------
	oauthConfig := auth.InitGoogleOAuthConfig(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("GOOGLE_REDIRECT_URL"),
	)
	googleEnabled := oauthConfig.ClientID != "" && oauthConfig.ClientSecret != ""
	if !googleEnabled {
		// Без ключей маршруты Google не регистрируются, конфиг остаётся nil
		oauthConfig = nil
	}

	// ---------------------------
	// 5. Настройка сессий
	// ---------------------------
	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		sessionKey = "super-secret-default-key" // Только для разработки!
		log.Println("Внимание: SESSION_KEY не задан, используется дефолтный.")
	}
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 60,
		HttpOnly: true,
		Secure:   false, // Поставьте true, если используете HTTPS
	}

	// ---------------------------
	// 6. Инициализация Хендлеров
	// ---------------------------
	h := handlers.NewHandler(db, store, oauthConfig, files)
	adminService := admin.Service{Handler: *h}
	adminOnly := middleware.RequireAdmin(h)
	authOnly := middleware.RequireAuth(h)

	// ---------------------------
	// 7. Роутинг с Gorilla Mux
	// ---------------------------
	r := mux.NewRouter()

	// --- Файлы вложений ---
	r.HandleFunc("/uploads/{filename}", h.DownloadUploadAPI).Methods("GET")
	r.PathPrefix("/preview/uploads/").Handler(
		http.StripPrefix("/preview/uploads/", http.FileServer(http.Dir(files.UploadsDir()))))

	// --- Аутентификация ---
	r.HandleFunc("/api/auth/signup", h.HandleSignup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.HandleLogin).Methods("POST")
	r.HandleFunc("/api/auth/me", h.HandleMe).Methods("GET")
	r.HandleFunc("/api/auth/logout", h.HandleLogout).Methods("POST")
	if googleEnabled {
		r.HandleFunc("/api/auth/google/login", h.HandleGoogleLogin).Methods("GET")
		r.HandleFunc("/api/auth/google/callback", h.HandleGoogleCallback).Methods("GET")
	}

	// --- Пользователи и прогресс ---
	r.HandleFunc("/api/user/progress", h.GetProgressAPI).Methods("GET")
	r.HandleFunc("/api/user/progress", h.UpdateProgressAPI).Methods("POST")
	r.HandleFunc("/api/user", adminOnly(adminService.GetUsersAPI)).Methods("GET")
	r.HandleFunc("/api/user", h.UpdateProfileAPI).Methods("PATCH")
	r.HandleFunc("/api/user/{id:[0-9]+}", adminOnly(adminService.UpdateUserRoleAPI)).Methods("PATCH")
	r.HandleFunc("/api/user/{id:[0-9]+}", adminOnly(adminService.DeleteUserAPI)).Methods("DELETE")

	// --- Курсы ---
	r.HandleFunc("/api/courses", h.GetCoursesAPI).Methods("GET")
	r.HandleFunc("/api/courses/validate-code", authOnly(h.ValidateCodeAPI)).Methods("POST")
	r.HandleFunc("/api/courses/{id:[0-9]+}/participants-count", adminOnly(adminService.ParticipantsCountAPI)).Methods("GET")
	r.HandleFunc("/api/courses/{id:[0-9]+}", h.GetCourseByIDAPI).Methods("GET")
	r.HandleFunc("/api/courses/{id:[0-9]+}", adminOnly(adminService.UpdateCourseAPI)).Methods("PATCH")
	r.HandleFunc("/api/courses/{id:[0-9]+}", adminOnly(adminService.DeleteCourseAPI)).Methods("DELETE")

	// --- Черновики курсов ---
	r.HandleFunc("/api/pending-courses", authOnly(h.GetPendingCoursesAPI)).Methods("GET")
	r.HandleFunc("/api/pending-courses", authOnly(h.SavePendingCourseAPI)).Methods("POST")
	r.HandleFunc("/api/pending-courses/course-versions/{id}", adminOnly(adminService.PendingCourseVersionAPI)).Methods("GET")
	r.HandleFunc("/api/pending-courses/{id}/publish", adminOnly(adminService.PublishPendingCourseAPI)).Methods("POST")
	r.HandleFunc("/api/pending-courses/{id}", h.GetPendingCourseAPI).Methods("GET")

	// --- Уведомления ---
	r.HandleFunc("/api/notifications", adminOnly(adminService.GetNotificationsAPI)).Methods("GET")
	r.HandleFunc("/api/notifications", adminService.CreateNotificationAPI).Methods("POST")
	r.HandleFunc("/api/notifications/{id:[0-9]+}", adminOnly(adminService.UpdateNotificationAPI)).Methods("PATCH")
	r.HandleFunc("/api/notifications/{id:[0-9]+}", adminOnly(adminService.DeleteNotificationAPI)).Methods("DELETE")

	// --- Тестовый маршрут ---
	r.HandleFunc("/api/test", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message":"Server is running!"}`)
	}).Methods("GET")

	// ---------------------------
	// 8. Запуск сервера
	// ---------------------------
	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	corsHandler := corsMiddleware(r)
	fmt.Printf("Сервер запущен: http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

// Фронтенд ходит с куками, поэтому origin конкретный, а не "*"
func corsMiddleware(next http.Handler) http.Handler {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
