package loan

type CreateLoanRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"required,uuid"`
	Principal        float64 `json:"principal" binding:"required,gt=0"`
	MonthlyRepayment float64 `json:"monthly_repayment" binding:"required,gt=0"`
	Reason           string  `json:"reason"`
	StartDate        string  `json:"start_date"`
}

type UpdateLoanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE PAID_OFF SUSPENDED"`
}

type LoanResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	Principal        float64 `json:"principal"`
	MonthlyRepayment float64 `json:"monthly_repayment"`
	RemainingBalance float64 `json:"remaining_balance"`
	Status           string  `json:"status"`
	Reason           string  `json:"reason,omitempty"`
	StartDate        *string `json:"start_date,omitempty"`
}
