package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/eduPlat/internal/content"
	"github.com/s/eduPlat/internal/handlers"
	"github.com/s/eduPlat/internal/models"
)

func newTestHandler(t *testing.T) (*handlers.Handler, *sessions.CookieStore) {
	t.Helper()
	store := sessions.NewCookieStore([]byte("test-session-key"))
	files, err := content.NewStore(t.TempDir())
	require.NoError(t, err)
	return handlers.NewHandler(nil, store, nil, files), store
}

// запрос с кукой авторизованного пользователя
func authedRequest(t *testing.T, store *sessions.CookieStore, userID uint, role string) *http.Request {
	t.Helper()
	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	session, _ := store.Get(seed, "session")
	session.Values["user_id"] = userID
	session.Values["username"] = "tester"
	session.Values["email"] = "tester@example.com"
	session.Values["role"] = role
	session.Values["img_id"] = 1
	require.NoError(t, session.Save(seed, rec))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	h, store := newTestHandler(t)
	protected := RequireAuth(h)(okHandler)

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, authedRequest(t, store, 1, models.RoleUser))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	h, store := newTestHandler(t)
	protected := RequireAdmin(h)(okHandler)

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, authedRequest(t, store, 2, models.RoleUser))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, authedRequest(t, store, 3, models.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
