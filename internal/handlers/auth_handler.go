package handlers

import (
	"net/http"

	"souq_backend/internal/logger"
	"souq_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookieName = "oauth_state"

// SessionCookieConfig controls the session cookie the callback issues.
type SessionCookieConfig struct {
	Name   string
	MaxAge int // seconds
}

// AuthHandler serves the account-facing pages and the provider login flow.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      SessionCookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie SessionCookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

// Landing renders the anonymous landing page with the login link.
func (h *AuthHandler) Landing(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}

// BeginLogin hands control to the identity provider.
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.authService.LoginURL(state))
}

// Callback completes the provider flow. Any failure sends the caller back
// to the landing page; success establishes the session and goes to the
// profile.
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || c.Query("state") != state {
		logger.CtxWarn(ctx, "provider callback with bad state")
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	token, user, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		logger.CtxWithError(ctx, "provider callback failed", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/profile")
}

// Profile shows the caller's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to fetch profile", err)
		c.String(http.StatusInternalServerError, "Error fetching user details.")
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := profilePage.Execute(c.Writer, user); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to render profile page", err)
	}
}

// Logout terminates the session and returns to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Users lists every registered user record.
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to fetch users", err)
		c.String(http.StatusInternalServerError, "Error fetching users.")
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := usersPage.Execute(c.Writer, users); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to render users page", err)
	}
}
