package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"karma-manager/internal/domain"
	"karma-manager/internal/middleware"
	"karma-manager/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBAC struct {
	allowed map[string]bool
	err     error
	last    domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.last = req
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[req.Role+":"+req.Resource+":"+req.Action], nil
}

func newRBACRouter(svc middleware.RBACService, role, company string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/attendances",
		func(c *gin.Context) {
			c.Set("role", role)
			c.Set("company_id", company)
			c.Next()
		},
		middleware.RBACAuthorize(svc, "attendance", "read"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: map[string]bool{"EMPLOYEE:attendance:read": true}}
		w := httptest.NewRecorder()
		newRBACRouter(svc, "EMPLOYEE", "c-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "c-1", svc.last.CompanyID)
	})

	t.Run("Denied", func(t *testing.T) {
		svc := &fakeRBAC{allowed: map[string]bool{}}
		w := httptest.NewRecorder()
		newRBACRouter(svc, "PARENT", "c-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "attendance:read")
	})

	t.Run("Missing Context", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRBACRouter(&fakeRBAC{}, "", "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Enforcer Error", func(t *testing.T) {
		svc := &fakeRBAC{err: apperror.New(apperror.CodeInternalError, "policy store down", http.StatusInternalServerError)}
		w := httptest.NewRecorder()
		newRBACRouter(svc, "EMPLOYEE", "c-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Plain Error", func(t *testing.T) {
		svc := &fakeRBAC{err: errors.New("boom")}
		w := httptest.NewRecorder()
		newRBACRouter(svc, "EMPLOYEE", "c-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
