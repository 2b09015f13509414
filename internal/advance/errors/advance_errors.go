package advanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary advance not found",
		http.StatusNotFound,
	)
	ErrInvalidAdvanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary advance id",
		http.StatusBadRequest,
	)
	ErrInvalidDeductPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"deduct period must be a valid month (1-12) and year",
		http.StatusBadRequest,
	)
	ErrAdvanceNotPending = apperror.New(
		apperror.CodeConflict,
		"only a PENDING salary advance can be approved or rejected",
		http.StatusConflict,
	)
)
