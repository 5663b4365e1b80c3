package attendanceerrors

import (
	"karma-manager/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmptyPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Person ID is required",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Person kind must be staff or student",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrPersonNotFound = apperror.New(
		"PERSON_NOT_FOUND",
		"Person is not registered in this company",
		http.StatusNotFound,
	)
	ErrPunchForbidden = apperror.New(
		apperror.CodeForbidden,
		"You may only punch for yourself",
		http.StatusForbidden,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"No attendance record for today",
		http.StatusNotFound,
	)
)
