package settings

import (
	"time"

	"github.com/google/uuid"
)

// PayrollSetting is the per-company statutory configuration row. Every
// numeric column is nullable: absence of a value means "use the documented
// default", never an error.
type PayrollSetting struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_settings_company"`
	CNSSSalarialRate *float64  `gorm:"column:cnss_salarial_rate;type:numeric(6,3)"`
	CNSSEmployerRate *float64  `gorm:"column:cnss_employer_rate;type:numeric(6,3)"`
	CNSSCeiling      *float64  `gorm:"column:cnss_ceiling;type:numeric(14,2)"`
	OvertimeRate15   *float64  `gorm:"column:overtime_rate_15;type:numeric(6,3)"`
	OvertimeRate50   *float64  `gorm:"column:overtime_rate_50;type:numeric(6,3)"`
	WorkHoursPerDay  *float64  `gorm:"column:work_hours_per_day;type:numeric(5,2)"`
	WorkDaysPerMonth *float64  `gorm:"column:work_days_per_month;type:numeric(5,2)"`
	ITSBrackets      []byte    `gorm:"column:its_brackets;type:jsonb"`
	UpdatedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PayrollSetting) TableName() string {
	return "payroll_settings"
}
