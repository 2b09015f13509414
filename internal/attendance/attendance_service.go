package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statusPresent = "PRESENT"
	statusLate    = "LATE"
)

var (
	errAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"already clocked in for today",
		http.StatusConflict,
	)
	errAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"already clocked out for today",
		http.StatusConflict,
	)
	errClockInNotFound = apperror.New(
		apperror.CodeNotFound,
		"clock in not found for today",
		http.StatusNotFound,
	)
	errAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	errInvalidOvertimeHours = apperror.New(
		apperror.CodeInvalidInput,
		"overtime hours must be non-negative and in half-hour steps",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	RecordOvertime(ctx context.Context, companyID, id string, req RecordOvertimeRequest) (AttendanceResponse, error)
	MonthlyOvertime(ctx context.Context, companyID, employeeID string, month, year int) (OvertimeSummary, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, errAlreadyClockedIn
	}

	status := statusPresent
	if now.Hour() > 9 || (now.Hour() == 9 && now.Minute() > 15) {
		status = statusLate
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		ClockIn:        now,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, errClockInNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, errAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) RecordOvertime(ctx context.Context, companyID, id string, req RecordOvertimeRequest) (AttendanceResponse, error) {
	if !validOvertimeHours(req.Overtime15Hours) || !validOvertimeHours(req.Overtime50Hours) {
		return AttendanceResponse{}, errInvalidOvertimeHours
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, errAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	row.Overtime15Hours = req.Overtime15Hours
	row.Overtime50Hours = req.Overtime50Hours

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) MonthlyOvertime(ctx context.Context, companyID, employeeID string, month, year int) (OvertimeSummary, error) {
	return s.repo.SumOvertimeForMonth(ctx, companyID, employeeID, month, year)
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

// validOvertimeHours accepts non-negative hours on a half-hour grid.
func validOvertimeHours(h float64) bool {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return false
	}
	return math.Mod(h*2, 1) == 0
}

func mapToResponse(row Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		AttendanceDate:  row.AttendanceDate.Format("2006-01-02"),
		ClockIn:         row.ClockIn.Format(time.RFC3339),
		Overtime15Hours: row.Overtime15Hours,
		Overtime50Hours: row.Overtime50Hours,
		Status:          row.Status,
		Source:          row.Source,
		Notes:           row.Notes,
	}

	if row.ClockOut != nil {
		v := row.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}

	return resp
}
