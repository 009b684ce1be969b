package routes

import (
	"souq_backend/internal/auth"
	"souq_backend/internal/handlers"
	"souq_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes binds every endpoint. Browser-rendered routes use the
// redirecting session gate; the JSON item API answers structured 401s.
func RegisterRoutes(
	r *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
	cookieName string,
	uploadsDir string,
) {
	pageGate := middleware.PageSessionMiddleware(tokens, cookieName)
	apiGate := middleware.SessionMiddleware(tokens, cookieName)

	// Anonymous landing and provider login flow
	r.GET("/", appHandlers.AuthHandler.Landing)
	providerAuth := r.Group("/auth/provider")
	{
		providerAuth.GET("", appHandlers.AuthHandler.BeginLogin)
		providerAuth.GET("/callback", appHandlers.AuthHandler.Callback)
	}

	// Account pages
	r.GET("/profile", pageGate, appHandlers.AuthHandler.Profile)
	r.GET("/logout", pageGate, appHandlers.AuthHandler.Logout)
	r.GET("/users", pageGate, appHandlers.AuthHandler.Users)

	// Item API
	items := r.Group("/items")
	{
		items.POST("", apiGate, appHandlers.ListingHandler.Create)
		items.GET("", appHandlers.ListingHandler.List)
		items.GET("/:id", appHandlers.ListingHandler.Get)
		items.DELETE("/:id", appHandlers.ListingHandler.Delete)
	}

	// Uploaded binaries are also exposed directly, independent of the
	// data-URI expansion on item reads.
	r.Static("/uploads", uploadsDir)
}
