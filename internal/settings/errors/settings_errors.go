package settingserrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidBrackets = apperror.New(
		apperror.CodeInvalidInput,
		"its brackets are structurally invalid",
		http.StatusBadRequest,
	)
	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll settings not found",
		http.StatusNotFound,
	)
)
