package employee

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	BaseSalary float64 `json:"base_salary" binding:"required,gt=0"`
	HireDate   string  `json:"hire_date"`
}

type UpdateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	BaseSalary float64 `json:"base_salary" binding:"required,gt=0"`
	IsActive   *bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"company_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	BaseSalary float64 `json:"base_salary"`
	HireDate   *string `json:"hire_date,omitempty"`
	IsActive   bool    `json:"is_active"`
}
