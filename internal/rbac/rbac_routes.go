package rbac

import (
	"karma-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	group := r.Group("/rbac")
	group.Use(guard.Authenticated()...)
	{
		group.GET("/permissions",
			middleware.RBACAuthorize(guard.RBAC, "rbac", "read"),
			h.MyPermissions,
		)
	}
}
