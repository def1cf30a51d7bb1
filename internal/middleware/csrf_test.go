package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	resp := w.Result()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CSRFCookieName {
			return cookie
		}
	}
	return nil
}

func TestMintCSRFToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MintCSRFToken())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, httptest.NewRequest("GET", "/ping", nil))
	cookie1 := csrfCookie(t, w1)

	require.NotNil(t, cookie1)
	assert.NotEmpty(t, cookie1.Value)
	// Client script must be able to read and echo the token back
	assert.False(t, cookie1.HttpOnly)

	// A fresh token is minted on every response
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest("GET", "/ping", nil))
	cookie2 := csrfCookie(t, w2)

	require.NotNil(t, cookie2)
	assert.NotEqual(t, cookie1.Value, cookie2.Value)
}

func TestMintCSRFTokenOnErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MintCSRFToken())
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/fail", nil))

	assert.NotNil(t, csrfCookie(t, w))
}
