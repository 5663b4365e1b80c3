package presence_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/presence"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	listFn func(ctx context.Context, companyID, kind string) ([]presence.Entry, error)
}

func (f *fakeLister) List(ctx context.Context, companyID, kind string) ([]presence.Entry, error) {
	return f.listFn(ctx, companyID, kind)
}

func TestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := presence.NewHandler(&fakeLister{
		listFn: func(ctx context.Context, companyID, kind string) ([]presence.Entry, error) {
			assert.Equal(t, "co-1", companyID)
			assert.Equal(t, "staff", kind)
			return []presence.Entry{{PersonID: "p-1", Date: "2026-03-02", InTime: time.Now()}}, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "co-1")
	c.Params = gin.Params{{Key: "kind", Value: "staff"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/presence/staff", nil)

	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"person_id":"p-1"`)
}

func TestHandler_List_InvalidKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := presence.NewHandler(&fakeLister{
		listFn: func(ctx context.Context, companyID, kind string) ([]presence.Entry, error) {
			return nil, attendanceerrors.ErrInvalidKind
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "kind", Value: "guest"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/presence/guest", nil)

	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}
