package loan

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "ACTIVE"
	StatusPaidOff   = "PAID_OFF"
	StatusSuspended = "SUSPENDED"
)

type Loan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Principal is the amount originally granted; RemainingBalance decreases
	// as installments are applied.
	Principal        float64 `gorm:"type:numeric(14,2);not null"`
	MonthlyRepayment float64 `gorm:"type:numeric(14,2);not null"`
	RemainingBalance float64 `gorm:"type:numeric(14,2);not null"`
	Status           string  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Reason           string  `gorm:"type:varchar(255)"`
	StartDate        *time.Time `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Loan) TableName() string {
	return "loans"
}
