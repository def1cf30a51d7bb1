package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vidgate/internal/auth"
	"vidgate/pkg/models"
)

type stubResolver struct {
	users map[string]*models.User
}

func (s *stubResolver) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

func sessionTestRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	}

	router.GET("/api/check-auth", RequireSession(resolver), handler)
	router.GET("/account", RequireSession(resolver), handler)

	return router
}

func TestRequireSessionMissingCookie(t *testing.T) {
	ConfigureSessions("test-secret", false)
	router := sessionTestRouter(&stubResolver{})

	t.Run("API path returns 401 JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/check-auth", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message": "Authentication required."}`, w.Body.String())
	})

	t.Run("browser path redirects to landing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/account", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestRequireSessionValidToken(t *testing.T) {
	ConfigureSessions("test-secret", false)

	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	router := sessionTestRouter(&stubResolver{users: map[string]*models.User{"user-1": user}})

	token, err := NewSessionToken(user.ID, user.Email, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email": "alice@example.com"}`, w.Body.String())
}

func TestRequireSessionExpiredToken(t *testing.T) {
	ConfigureSessions("test-secret", false)

	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	router := sessionTestRouter(&stubResolver{users: map[string]*models.User{"user-1": user}})

	token, err := NewSessionToken(user.ID, user.Email, -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionTamperedToken(t *testing.T) {
	ConfigureSessions("test-secret", false)

	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	router := sessionTestRouter(&stubResolver{users: map[string]*models.User{"user-1": user}})

	// Token signed under a different secret must be rejected
	ConfigureSessions("other-secret", false)
	token, err := NewSessionToken(user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	ConfigureSessions("test-secret", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionUnknownUser(t *testing.T) {
	ConfigureSessions("test-secret", false)
	router := sessionTestRouter(&stubResolver{})

	token, err := NewSessionToken("gone-user", "gone@example.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIsAPIPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/videos", true},
		{"/api/check-auth", true},
		{"/protected/player.html", true},
		{"/", false},
		{"/index.html", false},
		{"/apiary", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAPIPath(tt.path))
		})
	}
}
