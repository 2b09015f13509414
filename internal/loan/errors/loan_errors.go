package loanerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan not found",
		http.StatusNotFound,
	)
	ErrInvalidLoanID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid loan id",
		http.StatusBadRequest,
	)
	ErrInvalidLoanStatus = apperror.New(
		apperror.CodeInvalidInput,
		"loan status must be one of ACTIVE, PAID_OFF, SUSPENDED",
		http.StatusBadRequest,
	)
	ErrRepaymentExceedsPrincipal = apperror.New(
		apperror.CodeInvalidInput,
		"monthly repayment cannot exceed the loan principal",
		http.StatusBadRequest,
	)
)
