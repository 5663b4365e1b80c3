package directoryerrors

import (
	"karma-manager/internal/shared/apperror"
	"net/http"
)

var (
	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"Person not found",
		http.StatusNotFound,
	)
	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid person ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Person kind must be staff or student",
		http.StatusBadRequest,
	)
)
