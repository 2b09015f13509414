package payroll_test

import (
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/settings"

	"github.com/stretchr/testify/assert"
)

func defaultRates() settings.Resolved {
	return settings.Resolve(settings.Partial{})
}

func floatPtr(v float64) *float64 { return &v }

func TestValuateOvertime_NoOvertime(t *testing.T) {
	v, err := payroll.ValuateOvertime(500_000, 0, 0, defaultRates())

	assert.NoError(t, err)
	assert.Equal(t, 500_000.0, v.Gross)
	assert.InDelta(t, 2403.846, v.HourlyRate, 0.001)
	assert.Zero(t, v.Amount15)
	assert.Zero(t, v.Amount50)
}

func TestValuateOvertime_PremiumOnWholeHourlyValue(t *testing.T) {
	// 5 hours at +15%: each hour pays hourlyRate * 1.15, not hourlyRate * 0.15.
	v, err := payroll.ValuateOvertime(500_000, 5, 0, defaultRates())

	assert.NoError(t, err)
	assert.InDelta(t, 13_822.115, v.Amount15, 0.01)
	assert.InDelta(t, 513_822.115, v.Gross, 0.01)
}

func TestValuateOvertime_FiftyPercentBucket(t *testing.T) {
	v, err := payroll.ValuateOvertime(500_000, 0, 2, defaultRates())

	assert.NoError(t, err)
	assert.InDelta(t, 2403.846*2*1.5, v.Amount50, 0.01)
}

func TestValuateOvertime_RejectsNonPositiveBase(t *testing.T) {
	_, err := payroll.ValuateOvertime(0, 0, 0, defaultRates())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidBaseSalary)

	_, err = payroll.ValuateOvertime(-100, 0, 0, defaultRates())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidBaseSalary)
}

func TestValuateOvertime_RejectsNegativeHours(t *testing.T) {
	_, err := payroll.ValuateOvertime(500_000, -1, 0, defaultRates())
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeOvertimeHours)

	_, err = payroll.ValuateOvertime(500_000, 0, -0.5, defaultRates())
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeOvertimeHours)
}

func TestComputeContribution(t *testing.T) {
	assert.Equal(t, 20_000.0, payroll.ComputeContribution(500_000, 4, 1_200_000))
}

func TestComputeContribution_CeilingCapsBase(t *testing.T) {
	// Gross above the ceiling contributes only on the ceiling.
	assert.Equal(t, 48_000.0, payroll.ComputeContribution(2_000_000, 4, 1_200_000))
}

func TestComputeContribution_Floors(t *testing.T) {
	// 123_456 * 4% = 4938.24, floored to 4938.
	assert.Equal(t, 4938.0, payroll.ComputeContribution(123_456, 4, 1_200_000))
}

func TestComputeTax_FlatFallback(t *testing.T) {
	assert.Equal(t, 86_000.0, payroll.ComputeTax(480_000, nil))
}

func TestComputeTax_FlatFallbackBelowThreshold(t *testing.T) {
	assert.Zero(t, payroll.ComputeTax(40_000, nil))
	assert.Zero(t, payroll.ComputeTax(50_000, nil))
}

func TestComputeTax_Progressive(t *testing.T) {
	brackets := []settings.Bracket{
		{Min: 0, Max: floatPtr(100_000), Rate: 0},
		{Min: 100_000, Max: floatPtr(300_000), Rate: 0.10},
		{Min: 300_000, Max: nil, Rate: 0.20},
	}

	// 0 on the first 100k, 10% on the next 200k, 20% on the last 180k.
	assert.InDelta(t, 56_000.0, payroll.ComputeTax(480_000, brackets), 0.001)
}

func TestComputeTax_StopsAtBracketBoundary(t *testing.T) {
	brackets := []settings.Bracket{
		{Min: 0, Max: floatPtr(100_000), Rate: 0},
		{Min: 100_000, Max: nil, Rate: 0.10},
	}

	assert.Zero(t, payroll.ComputeTax(100_000, brackets))
	assert.InDelta(t, 10.0, payroll.ComputeTax(100_100, brackets), 0.001)
}

func TestAssemble_DefaultScenario(t *testing.T) {
	rates := defaultRates()
	v, err := payroll.ValuateOvertime(500_000, 0, 0, rates)
	assert.NoError(t, err)

	cnss := payroll.ComputeContribution(v.Gross, rates.CNSSSalarialRate, rates.CNSSCeiling)
	tax := payroll.ComputeTax(v.Gross-cnss, nil)

	b := payroll.Assemble(v, cnss, payroll.ComputeContribution(v.Gross, rates.CNSSEmployerRate, rates.CNSSCeiling), tax, 0, 0, 0, 0, rates, nil)

	assert.Equal(t, 500_000.0, b.GrossSalary)
	assert.Equal(t, 20_000.0, b.CNSSEmployee)
	assert.Equal(t, 480_000.0, b.TaxableNet)
	assert.Equal(t, 86_000.0, b.ITS)
	assert.Equal(t, 106_000.0, b.TotalDeductions)
	assert.Equal(t, 394_000.0, b.NetSalary)
	assert.False(t, b.IsNegative)
	assert.Equal(t, 4.0, b.ParametersUsed.CNSSSalarialRate)
}

func TestAssemble_LoanAndAdvanceDeductions(t *testing.T) {
	rates := defaultRates()
	v, err := payroll.ValuateOvertime(500_000, 0, 0, rates)
	assert.NoError(t, err)

	cnss := payroll.ComputeContribution(v.Gross, rates.CNSSSalarialRate, rates.CNSSCeiling)
	tax := payroll.ComputeTax(v.Gross-cnss, nil)

	b := payroll.Assemble(v, cnss, 0, tax, 30_000, 15_000, 0, 0, rates, nil)

	assert.Equal(t, 151_000.0, b.TotalDeductions)
	assert.Equal(t, 349_000.0, b.NetSalary)
}

func TestAssemble_NegativeNetIsFlaggedNotClamped(t *testing.T) {
	rates := defaultRates()
	v, err := payroll.ValuateOvertime(100_000, 0, 0, rates)
	assert.NoError(t, err)

	cnss := payroll.ComputeContribution(v.Gross, rates.CNSSSalarialRate, rates.CNSSCeiling)
	tax := payroll.ComputeTax(v.Gross-cnss, nil)

	b := payroll.Assemble(v, cnss, 0, tax, 120_000, 0, 0, 0, rates, nil)

	assert.True(t, b.IsNegative)
	assert.Less(t, b.NetSalary, 0.0)
}

func TestAssemble_CarriesDegradedSources(t *testing.T) {
	rates := defaultRates()
	v, err := payroll.ValuateOvertime(500_000, 0, 0, rates)
	assert.NoError(t, err)

	b := payroll.Assemble(v, 0, 0, 0, 0, 0, 0, 0, rates, []string{payroll.SourceLoans})

	assert.Equal(t, []string{payroll.SourceLoans}, b.DegradedSources)
}
