package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the auth routes on an API group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, middleware gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware, h.Me)
	}
}
