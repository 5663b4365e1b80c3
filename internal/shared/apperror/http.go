package apperror

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HTTPError is the transport view of an error, ready for response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP resolves any error into an HTTPError. Unknown errors become 500s
// without leaking their message.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: ErrInternal.HTTPStatus, Code: ErrInternal.Code, Message: ErrInternal.Message}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		err = MapValidationError(verrs)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		out := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Err != nil && appErr.HTTPStatus < 500 {
			out.Details = appErr.Err.Error()
		}
		return out
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
