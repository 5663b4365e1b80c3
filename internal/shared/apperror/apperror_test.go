package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"karma-manager/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Wrap(t *testing.T) {
	cause := errors.New("disk full")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "save failed", http.StatusInternalServerError)

	assert.Equal(t, "save failed: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", 500))
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status", func(t *testing.T) {
		got := apperror.ToHTTP(fmt.Errorf("lookup: %w", apperror.ErrNotFound))
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.ErrInternal.Message, got.Message)
	})

	t.Run("client error exposes wrapped detail", func(t *testing.T) {
		err := apperror.Wrap(errors.New("bad kind"), apperror.CodeInvalidInput, "invalid", http.StatusBadRequest)
		got := apperror.ToHTTP(err)
		assert.Equal(t, "bad kind", got.Details)
	})

	t.Run("validation errors are mapped", func(t *testing.T) {
		type req struct {
			Name string `validate:"required"`
		}
		verr := validator.New().Struct(req{})
		got := apperror.ToHTTP(verr)
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, "Name is required", got.Message)
	})
}
