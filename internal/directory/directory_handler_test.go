package directory_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"karma-manager/internal/directory"
	directoryerrors "karma-manager/internal/directory/errors"
	directoryMock "karma-manager/internal/directory/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_GetOptions_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := directoryMock.NewMockService(ctrl)

	svc.EXPECT().GetOptions(gomock.Any(), "co-1", "staff").Return([]directory.PersonResponse{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
	}, nil)

	h := directory.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "co-1")
	c.Params = gin.Params{{Key: "kind", Value: "staff"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/people/staff?page=2&page_size=2", nil)

	h.GetOptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"c"`)
	assert.NotContains(t, w.Body.String(), `"id":"a"`)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := directoryMock.NewMockService(ctrl)

	svc.EXPECT().GetByID(gomock.Any(), "co-1", "student", "p-1").Return(directory.PersonResponse{}, directoryerrors.ErrPersonNotFound)

	h := directory.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "co-1")
	c.Params = gin.Params{{Key: "kind", Value: "student"}, {Key: "id", Value: "p-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/people/student/p-1", nil)

	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
