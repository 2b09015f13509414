package advance

type CreateAdvanceRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	DeductMonth int     `json:"deduct_month" binding:"required,min=1,max=12"`
	DeductYear  int     `json:"deduct_year" binding:"required,min=2000"`
	Reason      string  `json:"reason"`
}

type ReviewAdvanceRequest struct {
	Approve bool `json:"approve"`
}

type AdvanceResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id"`
	Amount      float64 `json:"amount"`
	DeductMonth int     `json:"deduct_month"`
	DeductYear  int     `json:"deduct_year"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
}
