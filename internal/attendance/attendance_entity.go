package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;index"`
	ClockIn        time.Time  `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut       *time.Time `gorm:"column:clock_out;type:timestamptz"`
	// Overtime hours worked that day, split by premium tier. Half-hour
	// increments are meaningful, hence numeric rather than integer.
	Overtime15Hours float64        `gorm:"column:overtime15_hours;type:numeric(5,2);not null;default:0"`
	Overtime50Hours float64        `gorm:"column:overtime50_hours;type:numeric(5,2);not null;default:0"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source          string         `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes           *string        `gorm:"column:notes;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// OvertimeSummary is the month's worth of overtime for one employee,
// consumed by the payroll engine.
type OvertimeSummary struct {
	Hours15 float64 `json:"overtime15_hours"`
	Hours50 float64 `json:"overtime50_hours"`
}
