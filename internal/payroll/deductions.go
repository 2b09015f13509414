package payroll

import (
	"go-payroll/internal/advance"
	"go-payroll/internal/loan"
)

// SumLoanRepayments adds up the monthly installment of every ACTIVE loan
// the employee holds. The full installment is deducted even when the
// remaining balance is smaller; the balance is settled outside this
// pipeline.
func SumLoanRepayments(employeeID string, loans []loan.Loan) float64 {
	var total float64
	for _, l := range loans {
		if l.Status != loan.StatusActive {
			continue
		}
		if l.EmployeeID.String() != employeeID {
			continue
		}
		total += l.MonthlyRepayment
	}
	return total
}

// SumAdvances adds up APPROVED advances scheduled for exactly the requested
// pay period. No proration: an advance either lands in this period whole or
// not at all.
func SumAdvances(employeeID string, month, year int, advances []advance.Advance) float64 {
	var total float64
	for _, a := range advances {
		if a.Status != advance.StatusApproved {
			continue
		}
		if a.EmployeeID.String() != employeeID {
			continue
		}
		if a.DeductMonth != month || a.DeductYear != year {
			continue
		}
		total += a.Amount
	}
	return total
}
