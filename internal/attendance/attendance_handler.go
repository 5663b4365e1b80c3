package attendance

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/domain"
	"karma-manager/internal/middleware"
	"karma-manager/internal/shared/apperror"
	"karma-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotentResultTTL = 10 * time.Minute

type Handler struct {
	service Service
	rbac    middleware.RBACService
	rdb     *redis.Client
}

func NewHandler(service Service, rbac middleware.RBACService) *Handler {
	return &Handler{service: service, rbac: rbac}
}

func NewHandlerWithRedis(service Service, rbac middleware.RBACService, rdb *redis.Client) *Handler {
	return &Handler{service: service, rbac: rbac, rdb: rdb}
}

func (h *Handler) Punch(c *gin.Context) {
	lockKey, _ := c.Get(middleware.IdempotencyLockKey)
	cacheKey, _ := c.Get(middleware.IdempotencyCacheKey)

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	kind, ok := ParseKind(c.Param("kind"))
	if !ok {
		response.FromError(c, attendanceerrors.ErrInvalidKind)
		return
	}

	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.FromError(c, apperror.Wrap(err, apperror.CodeValidation, "Invalid input", http.StatusBadRequest))
		return
	}

	self := c.GetString("person_id")
	personID := self
	if req.PersonID != "" && req.PersonID != self {
		if !h.allowed(c, "punch_any") {
			response.FromError(c, attendanceerrors.ErrPunchForbidden)
			return
		}
		personID = req.PersonID
	}
	if personID == "" {
		response.FromError(c, attendanceerrors.ErrEmptyPersonID)
		return
	}

	resp, err := h.service.Punch(c.Request.Context(), c.GetString("company_id"), kind, personID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, idempotentResultTTL).Err()
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	kind, ok := ParseKind(c.Param("kind"))
	if !ok {
		response.FromError(c, attendanceerrors.ErrInvalidKind)
		return
	}

	canReadAll := h.allowed(c, "read_all")
	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), kind, c.GetString("person_id"), canReadAll)
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	start, end := response.Paginate(len(resp), page, pageSize)
	meta := response.NewPaginationMeta(int64(len(resp)), page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetToday(c *gin.Context) {
	kind, ok := ParseKind(c.Param("kind"))
	if !ok {
		response.FromError(c, attendanceerrors.ErrInvalidKind)
		return
	}

	personID := c.GetString("person_id")
	if q := c.Query("person_id"); q != "" && q != personID {
		if !h.allowed(c, "read_all") {
			response.FromError(c, attendanceerrors.ErrPunchForbidden)
			return
		}
		personID = q
	}

	resp, err := h.service.GetToday(c.Request.Context(), c.GetString("company_id"), kind, personID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// allowed asks RBAC for a secondary action; privileged roles pass without it.
func (h *Handler) allowed(c *gin.Context, action string) bool {
	role := c.GetString("role")
	if h.rbac == nil {
		return domain.IsPrivilegedRole(role)
	}
	ok, err := h.rbac.Enforce(domain.EnforceRequest{
		Role:      role,
		CompanyID: c.GetString("company_id"),
		Resource:  "attendance",
		Action:    action,
	})
	return err == nil && ok
}
