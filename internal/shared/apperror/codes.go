package apperror

// Stable error codes carried in the response envelope. Clients branch on
// these, not on messages, so values never change once published.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// InvalidState covers rows that exist but cannot serve the request,
	// e.g. an inactive employee or a payroll with a generated payslip.
	CodeInvalidState = "INVALID_STATE"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
