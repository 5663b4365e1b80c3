package directory

import (
	"karma-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	people := r.Group("/people")
	people.Use(guard.Authenticated()...)
	{
		people.GET("/:kind",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(guard.RBAC, "people", "read"),
			h.GetOptions,
		)
		people.GET("/:kind/:id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(guard.RBAC, "people", "read"),
			h.GetByID,
		)
	}
}
