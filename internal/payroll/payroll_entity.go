package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusRecorded = "RECORDED"
	StatusPaid     = "PAID"
)

// Payroll stores the breakdown exactly as it was computed and approved,
// together with the inputs and the parameter snapshot it was computed from.
// Payslips render from this row, never from a recomputation, so what the
// user approved and what ends up on paper cannot drift apart.
type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_company"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_payroll_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_payroll_period"`

	// Inputs
	BaseSalary float64 `gorm:"type:numeric(14,2);not null"`
	Hours15    float64 `gorm:"type:numeric(5,2);not null;default:0"`
	Hours50    float64 `gorm:"type:numeric(5,2);not null;default:0"`

	// Computed breakdown
	OvertimeAmount15  float64 `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeAmount50  float64 `gorm:"type:numeric(14,2);not null;default:0"`
	GrossSalary       float64 `gorm:"type:numeric(14,2);not null"`
	CNSSEmployee      float64 `gorm:"type:numeric(14,2);not null;default:0"`
	CNSSEmployer      float64 `gorm:"type:numeric(14,2);not null;default:0"`
	TaxableNet        float64 `gorm:"type:numeric(14,2);not null;default:0"`
	ITS               float64 `gorm:"type:numeric(14,2);not null;default:0"`
	LoanDeductions    float64 `gorm:"type:numeric(14,2);not null;default:0"`
	AdvanceDeductions float64 `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary         float64 `gorm:"type:numeric(14,2);not null"`
	IsNegative        bool    `gorm:"not null;default:false"`

	// Audit snapshot
	ParametersUsed  []byte `gorm:"type:jsonb"`
	DegradedSources []byte `gorm:"type:jsonb"`

	Status             string     `gorm:"type:varchar(20);not null;default:'RECORDED'"`
	RecordedBy         uuid.UUID  `gorm:"type:uuid;not null"`
	PayslipNumber      *string    `gorm:"type:varchar(20)"`
	PayslipGeneratedAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}
