package attendance

import (
	"karma-manager/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard, rdb *redis.Client) {
	attendances := r.Group("/attendances/:kind")
	attendances.Use(guard.Authenticated()...)
	{
		attendances.GET("",
			middleware.RBACAuthorize(guard.RBAC, "attendance", "read"),
			h.GetAll,
		)
		attendances.GET("/today",
			middleware.RBACAuthorize(guard.RBAC, "attendance", "read"),
			h.GetToday,
		)
		attendances.POST("/punch",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(guard.RBAC, "attendance", "punch"),
			middleware.Idempotency(rdb),
			h.Punch,
		)
	}
}
