package presence

import (
	"karma-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	presence := r.Group("/presence")
	presence.Use(guard.Authenticated()...)
	{
		presence.GET("/:kind",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(guard.RBAC, "presence", "read"),
			h.List,
		)
	}
}
