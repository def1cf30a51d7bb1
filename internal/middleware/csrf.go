package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

// CSRFCookieName is the double-submit token cookie. It is deliberately not
// HttpOnly: client script reads it and echoes the value back on
// state-changing requests.
const CSRFCookieName = "csrf_token"

// MintCSRFToken sets a freshly generated anti-forgery token cookie on every
// response. Verifying the echoed value is the caller's concern; this layer
// only mints.
func MintCSRFToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := newCSRFToken()
		if err == nil {
			c.SetCookie(CSRFCookieName, token, 0, "/", "", cookieSecure, false)
		}
		c.Next()
	}
}

func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
