package payroll

// ComputePayrollRequest drives both the preview and the record endpoints.
// Hours15/Hours50, when present, override the attendance summary for the
// period (UI-edited hours).
type ComputePayrollRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	Month      int      `json:"month" binding:"required,min=1,max=12"`
	Year       int      `json:"year" binding:"required,min=2000"`
	Hours15    *float64 `json:"hours15" binding:"omitempty,min=0"`
	Hours50    *float64 `json:"hours50" binding:"omitempty,min=0"`
}

type PayrollResponse struct {
	ID                 string    `json:"id"`
	CompanyID          string    `json:"company_id"`
	EmployeeID         string    `json:"employee_id"`
	Month              int       `json:"month"`
	Year               int       `json:"year"`
	Status             string    `json:"status"`
	RecordedBy         string    `json:"recorded_by"`
	Breakdown          Breakdown `json:"breakdown"`
	PayslipNumber      *string   `json:"payslip_number,omitempty"`
	PayslipGeneratedAt *string   `json:"payslip_generated_at,omitempty"`
}
