package attendance

type ClockInRequest struct {
	Source string  `json:"source"`
	Notes  *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type RecordOvertimeRequest struct {
	Overtime15Hours float64 `json:"overtime15_hours" binding:"min=0"`
	Overtime50Hours float64 `json:"overtime50_hours" binding:"min=0"`
}

type OvertimeSummaryQuery struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=2000,max=2100"`
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	AttendanceDate  string  `json:"attendance_date"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        *string `json:"clock_out,omitempty"`
	Overtime15Hours float64 `json:"overtime15_hours"`
	Overtime50Hours float64 `json:"overtime50_hours"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	Notes           *string `json:"notes,omitempty"`
}
