// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ro7arthub/storefront-backend/internal/config"
)

const sessionIDKey = "session_id"

// Session assigns every visitor a guest session. The session ID is a random
// UUID wrapped in a signed JWT cookie; no account or login is involved. A
// missing, expired or tampered cookie gets replaced with a fresh session
// rather than rejected.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""

		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil {
			sessionID = parseSessionToken(cookie, cfg.Session.Secret)
		}

		if sessionID == "" {
			sessionID = uuid.New().String()

			token, err := signSessionToken(sessionID, cfg.Session.Secret, cfg.Session.TTL)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to create session",
				})
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TTL.Seconds()), "/", "", false, true)
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID set by the Session middleware
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get(sessionIDKey); exists {
		if id, ok := sessionID.(string); ok {
			return id
		}
	}
	return ""
}

// parseSessionToken validates the cookie and extracts the session ID.
// Returns "" on any failure so the caller mints a new session.
func parseSessionToken(tokenString, secret string) string {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}

// signSessionToken signs a new session token for the given session ID
func signSessionToken(sessionID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
