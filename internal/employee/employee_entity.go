package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName   string    `gorm:"type:varchar(120);not null"`
	Email      string    `gorm:"uniqueIndex:uq_employee_email"`
	// BaseSalary in currency units; must be positive before a payslip can
	// be computed for the employee.
	BaseSalary float64 `gorm:"type:numeric(14,2);not null;default:0"`
	HireDate   *time.Time `gorm:"type:date"`
	IsActive   bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Employee) TableName() string {
	return "employees"
}
