package auth

import (
	"karma-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)

		me := append(guard.Authenticated(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.GET("/me", me...)
	}
}
