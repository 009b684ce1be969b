package middleware

import (
	"net/http"
	"strings"

	"souq_backend/internal/auth"
	"souq_backend/internal/logger"
	"souq_backend/pkg/apperrors"
	"souq_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware verifies the session and puts the user id into the
// context. JSON routes answer a structured 401; browser-rendered routes
// redirect to the anonymous landing page instead.
func SessionMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return requireSession(tokens, cookieName, false)
}

// PageSessionMiddleware is the browser-route variant of the gate.
func PageSessionMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return requireSession(tokens, cookieName, true)
}

func requireSession(tokens *auth.TokenManager, cookieName string, redirect bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c, cookieName)
		if tokenStr == "" {
			reject(c, redirect, "Authentication required")
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			reject(c, redirect, "Invalid or expired session")
			return
		}

		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// sessionToken accepts the session cookie (browsers) or a bearer header
// (API clients).
func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func reject(c *gin.Context, redirect bool, message string) {
	if redirect {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	apperrors.HandleError(c, apperrors.NewUnauthorizedError(message))
	c.Abort()
}

// GetUserID extracts the authenticated user's id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
