package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"pay period must be a valid month (1-12) and year",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found for this company",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeInvalidState,
		"cannot compute payroll for an inactive employee",
		http.StatusConflict,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidState,
		"employee base salary must be greater than zero",
		http.StatusUnprocessableEntity,
	)
	ErrNegativeOvertimeHours = apperror.New(
		apperror.CodeInvalidInput,
		"overtime hours cannot be negative",
		http.StatusBadRequest,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"payroll already recorded for this employee and period",
		http.StatusConflict,
	)
	ErrPayslipAlreadyGenerated = apperror.New(
		apperror.CodeConflict,
		"payroll cannot be deleted once its payslip has been generated",
		http.StatusConflict,
	)
)
