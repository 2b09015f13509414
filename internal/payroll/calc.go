package payroll

import (
	"math"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/settings"
)

// Flat ITS rule applied when a company has no progressive bracket schedule:
// 20% of whatever taxable net exceeds the threshold.
const (
	flatTaxThreshold = 50_000.0
	flatTaxRate      = 0.20
)

// OvertimeValuation prices a month of overtime against the base salary.
type OvertimeValuation struct {
	Base       float64
	HourlyRate float64
	Amount15   float64
	Amount50   float64
	Gross      float64
}

// Breakdown is the immutable result of one payroll computation. A fresh
// value is produced per request; nothing in here is ever mutated after
// assembly.
type Breakdown struct {
	BaseSalary        float64 `json:"base_salary"`
	Hours15           float64 `json:"hours15"`
	Hours50           float64 `json:"hours50"`
	HourlyRate        float64 `json:"hourly_rate"`
	OvertimeAmount15  float64 `json:"overtime_amount15"`
	OvertimeAmount50  float64 `json:"overtime_amount50"`
	GrossSalary       float64 `json:"gross_salary"`
	CNSSEmployee      float64 `json:"cnss_employee"`
	CNSSEmployer      float64 `json:"cnss_employer"`
	TaxableNet        float64 `json:"taxable_net"`
	ITS               float64 `json:"its"`
	LoanDeductions    float64 `json:"loan_deductions"`
	AdvanceDeductions float64 `json:"advance_deductions"`
	TotalDeductions   float64 `json:"total_deductions"`
	NetSalary         float64 `json:"net_salary"`
	// IsNegative flags a net below zero instead of clamping it, so the
	// caller sees that deductions exceeded gross pay.
	IsNegative bool `json:"is_negative"`
	// ParametersUsed echoes the rates actually applied, for audit/display.
	ParametersUsed  settings.Resolved `json:"parameters_used"`
	DegradedSources []string          `json:"degraded_sources,omitempty"`
}

// ValuateOvertime derives the hourly rate from the base salary and prices
// both overtime buckets. The premium applies to the whole hourly value, not
// just the increment: one hour at 15% pays hourlyRate * 1.15.
func ValuateOvertime(baseSalary, hours15, hours50 float64, rates settings.Resolved) (OvertimeValuation, error) {
	if baseSalary <= 0 {
		return OvertimeValuation{}, payrollerrors.ErrInvalidBaseSalary
	}
	if hours15 < 0 || hours50 < 0 {
		return OvertimeValuation{}, payrollerrors.ErrNegativeOvertimeHours
	}

	hourlyRate := baseSalary / (rates.WorkHoursPerDay * rates.WorkDaysPerMonth)
	amount15 := hourlyRate * hours15 * (1 + rates.OvertimeRate15/100)
	amount50 := hourlyRate * hours50 * (1 + rates.OvertimeRate50/100)

	return OvertimeValuation{
		Base:       baseSalary,
		HourlyRate: hourlyRate,
		Amount15:   amount15,
		Amount50:   amount50,
		Gross:      baseSalary + amount15 + amount50,
	}, nil
}

// ComputeContribution applies the CNSS rate to the gross salary capped at
// the ceiling, floored to whole currency units.
func ComputeContribution(gross, rate, ceiling float64) float64 {
	base := math.Min(gross, ceiling)
	return math.Floor(base * rate / 100)
}

// ComputeTax walks the progressive schedule and accumulates the marginal
// tax of every slice below taxableNet. With no schedule it falls back to
// the flat rule. The raw amount is returned unfloored; assembly floors it
// once.
func ComputeTax(taxableNet float64, brackets []settings.Bracket) float64 {
	if len(brackets) == 0 {
		return math.Max(0, taxableNet-flatTaxThreshold) * flatTaxRate
	}

	var tax float64
	for _, b := range brackets {
		if taxableNet <= b.Min {
			break
		}
		upper := taxableNet
		if b.Max != nil && *b.Max < taxableNet {
			upper = *b.Max
		}
		tax += (upper - b.Min) * b.Rate
	}
	return tax
}

// Assemble combines gross, contribution, tax and aggregated deductions into
// the final payslip breakdown.
func Assemble(
	v OvertimeValuation,
	cnssEmployee, cnssEmployer, rawTax, loanDeductions, advanceDeductions float64,
	hours15, hours50 float64,
	params settings.Resolved,
	degraded []string,
) Breakdown {
	its := math.Floor(rawTax)
	total := cnssEmployee + its + loanDeductions + advanceDeductions
	net := math.Floor(v.Gross - total)

	return Breakdown{
		BaseSalary:        v.Base,
		Hours15:           hours15,
		Hours50:           hours50,
		HourlyRate:        v.HourlyRate,
		OvertimeAmount15:  v.Amount15,
		OvertimeAmount50:  v.Amount50,
		GrossSalary:       v.Gross,
		CNSSEmployee:      cnssEmployee,
		CNSSEmployer:      cnssEmployer,
		TaxableNet:        v.Gross - cnssEmployee,
		ITS:               its,
		LoanDeductions:    loanDeductions,
		AdvanceDeductions: advanceDeductions,
		TotalDeductions:   total,
		NetSalary:         net,
		IsNegative:        net < 0,
		ParametersUsed:    params,
		DegradedSources:   degraded,
	}
}
