package advance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusDeducted = "DEDUCTED"
)

type Advance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     float64   `gorm:"type:numeric(14,2);not null"`
	// DeductMonth/DeductYear name the pay period the advance is withheld in.
	DeductMonth int    `gorm:"not null"`
	DeductYear  int    `gorm:"not null"`
	Status      string `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Reason      string `gorm:"type:varchar(255)"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Advance) TableName() string {
	return "salary_advances"
}
