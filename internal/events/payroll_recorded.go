package events

import "time"

const PayrollRecordedTopic = "hr.payroll.recorded.v1"

// PayrollRecordedEvent is emitted through the outbox when an approved
// breakdown is persisted. The consumer side renders the payslip from the
// stored breakdown, never from a recomputation.
type PayrollRecordedEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	RecordedBy string    `json:"recorded_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
