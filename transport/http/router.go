package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farstack/heimdall/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(handlers *AuthHandlers, authService *service.AuthService) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/sign-in", handlers.SignIn)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(RequireSession(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/users/:fid/status", handlers.Status)
	}

	return router
}
