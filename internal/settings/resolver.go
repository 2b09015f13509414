package settings

import "encoding/json"

// Documented defaults applied whenever a company has not configured a field.
const (
	DefaultCNSSSalarialRate = 4.0
	DefaultCNSSEmployerRate = 16.0
	DefaultCNSSCeiling      = 1_200_000.0
	DefaultOvertimeRate15   = 15.0
	DefaultOvertimeRate50   = 50.0
	DefaultWorkHoursPerDay  = 8.0
	DefaultWorkDaysPerMonth = 26.0
)

// Partial is a possibly incomplete settings payload, as loaded from the
// company row or supplied by a caller.
type Partial struct {
	CNSSSalarialRate *float64
	CNSSEmployerRate *float64
	CNSSCeiling      *float64
	OvertimeRate15   *float64
	OvertimeRate50   *float64
	WorkHoursPerDay  *float64
	WorkDaysPerMonth *float64
	ITSBrackets      json.RawMessage
}

// Resolved is a fully populated settings value. It is echoed verbatim on
// every payslip breakdown so the rates actually applied stay auditable.
type Resolved struct {
	CNSSSalarialRate float64   `json:"cnss_salarial_rate"`
	CNSSEmployerRate float64   `json:"cnss_employer_rate"`
	CNSSCeiling      float64   `json:"cnss_ceiling"`
	OvertimeRate15   float64   `json:"overtime_rate_15"`
	OvertimeRate50   float64   `json:"overtime_rate_50"`
	WorkHoursPerDay  float64   `json:"work_hours_per_day"`
	WorkDaysPerMonth float64   `json:"work_days_per_month"`
	Brackets         []Bracket `json:"its_brackets,omitempty"`
}

// Resolve substitutes the documented default for every missing scalar field.
// Pure substitution, no side effects, never fails. Brackets are handled
// separately by ParseBrackets so the caller decides how to report a
// malformed schedule.
func Resolve(p Partial) Resolved {
	return Resolved{
		CNSSSalarialRate: valueOr(p.CNSSSalarialRate, DefaultCNSSSalarialRate),
		CNSSEmployerRate: valueOr(p.CNSSEmployerRate, DefaultCNSSEmployerRate),
		CNSSCeiling:      valueOr(p.CNSSCeiling, DefaultCNSSCeiling),
		OvertimeRate15:   valueOr(p.OvertimeRate15, DefaultOvertimeRate15),
		OvertimeRate50:   valueOr(p.OvertimeRate50, DefaultOvertimeRate50),
		WorkHoursPerDay:  valueOr(p.WorkHoursPerDay, DefaultWorkHoursPerDay),
		WorkDaysPerMonth: valueOr(p.WorkDaysPerMonth, DefaultWorkDaysPerMonth),
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (s PayrollSetting) ToPartial() Partial {
	return Partial{
		CNSSSalarialRate: s.CNSSSalarialRate,
		CNSSEmployerRate: s.CNSSEmployerRate,
		CNSSCeiling:      s.CNSSCeiling,
		OvertimeRate15:   s.OvertimeRate15,
		OvertimeRate50:   s.OvertimeRate50,
		WorkHoursPerDay:  s.WorkHoursPerDay,
		WorkDaysPerMonth: s.WorkDaysPerMonth,
		ITSBrackets:      json.RawMessage(s.ITSBrackets),
	}
}
