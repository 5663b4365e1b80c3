package rbac

import (
	"net/http"

	"karma-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lists what the caller's role may do, for dashboard menus.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	response.Success(c, http.StatusOK, gin.H{
		"role":        role,
		"permissions": h.service.Permissions(role),
	}, nil)
}
