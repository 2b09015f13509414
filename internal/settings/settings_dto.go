package settings

import "encoding/json"

type UpsertSettingsRequest struct {
	CNSSSalarialRate *float64        `json:"cnss_salarial_rate" binding:"omitempty,gte=0,lte=100"`
	CNSSEmployerRate *float64        `json:"cnss_employer_rate" binding:"omitempty,gte=0,lte=100"`
	CNSSCeiling      *float64        `json:"cnss_ceiling" binding:"omitempty,gt=0"`
	OvertimeRate15   *float64        `json:"overtime_rate_15" binding:"omitempty,gte=0"`
	OvertimeRate50   *float64        `json:"overtime_rate_50" binding:"omitempty,gte=0"`
	WorkHoursPerDay  *float64        `json:"work_hours_per_day" binding:"omitempty,gt=0,lte=24"`
	WorkDaysPerMonth *float64        `json:"work_days_per_month" binding:"omitempty,gt=0,lte=31"`
	ITSBrackets      json.RawMessage `json:"its_brackets"`
}

type SettingsResponse struct {
	CompanyID  string   `json:"company_id"`
	Configured Partial  `json:"-"`
	Resolved   Resolved `json:"resolved"`
	// BracketsValid is false when a stored schedule failed structural
	// validation and reads are falling back to the flat rule.
	BracketsValid bool `json:"brackets_valid"`
}
