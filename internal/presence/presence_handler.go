package presence

import (
	"context"
	"net/http"

	"karma-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Lister interface {
	List(ctx context.Context, companyID, kind string) ([]Entry, error)
}

type Handler struct {
	board Lister
}

func NewHandler(board Lister) *Handler {
	return &Handler{board: board}
}

func (h *Handler) List(c *gin.Context) {
	entries, err := h.board.List(c.Request.Context(), c.GetString("company_id"), c.Param("kind"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries, nil)
}
