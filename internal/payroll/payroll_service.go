package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-payroll/internal/advance"
	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collaborator names reported on a breakdown when their fetch degraded.
const (
	SourceSettings   = "settings"
	SourceAttendance = "attendance"
	SourceLoans      = "loans"
	SourceAdvances   = "advances"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	// Compute runs the full pipeline and returns a preview breakdown
	// without persisting anything.
	Compute(ctx context.Context, companyID string, req ComputePayrollRequest) (Breakdown, error)
	// Record recomputes through the same pipeline and persists the result
	// in one transaction with the recorded event.
	Record(ctx context.Context, companyID, actorID string, req ComputePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	// GeneratePayslip renders the stored breakdown as a PDF, assigning a
	// payslip number on first generation.
	GeneratePayslip(ctx context.Context, companyID, id string) ([]byte, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	settings    settings.Service
	attendances attendance.Repository
	loans       loan.Repository
	advances    advance.Repository
	counter     counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	settingsSvc settings.Service,
	attendances attendance.Repository,
	loans loan.Repository,
	advances advance.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		settings:    settingsSvc,
		attendances: attendances,
		loans:       loans,
		advances:    advances,
		counter:     counterRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

func (s *service) Compute(
	ctx context.Context,
	companyID string,
	req ComputePayrollRequest,
) (Breakdown, error) {
	breakdown, _, err := s.compute(ctx, companyID, req)
	return breakdown, err
}

// compute fetches every collaborator input concurrently and runs the pure
// calculation pipeline. The employee row is required; every other input
// degrades to zero/empty when its fetch fails, and the degradation is
// surfaced on the breakdown.
func (s *service) compute(
	ctx context.Context,
	companyID string,
	req ComputePayrollRequest,
) (Breakdown, *employee.Employee, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return Breakdown{}, nil, payrollerrors.ErrInvalidCompanyID
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return Breakdown{}, nil, payrollerrors.ErrInvalidPeriod
	}

	var (
		emp    *employee.Employee
		empErr error

		resolved    settings.Resolved
		settingsErr error

		summary attendance.OvertimeSummary
		attErr  error

		loanRows []loan.Loan
		loanErr  error

		advRows []advance.Advance
		advErr  error
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		emp, empErr = s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	}()
	go func() {
		defer wg.Done()
		resolved, settingsErr = s.settings.ResolveForCompany(ctx, companyID)
	}()
	go func() {
		defer wg.Done()
		summary, attErr = s.attendances.SumOvertimeForMonth(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	}()
	go func() {
		defer wg.Done()
		loanRows, loanErr = s.loans.ListByEmployee(ctx, companyID, req.EmployeeID)
	}()
	go func() {
		defer wg.Done()
		advRows, advErr = s.advances.ListByEmployee(ctx, companyID, req.EmployeeID)
	}()
	wg.Wait()

	rid := contextutil.GetRequestID(ctx)

	if empErr != nil {
		if errors.Is(empErr, gorm.ErrRecordNotFound) {
			return Breakdown{}, nil, payrollerrors.ErrEmployeeNotFound
		}
		s.logger.Error("payroll compute employee fetch failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(empErr),
		)
		return Breakdown{}, nil, empErr
	}
	if !emp.IsActive {
		return Breakdown{}, nil, payrollerrors.ErrEmployeeInactive
	}

	var degraded []string
	if settingsErr != nil {
		s.logger.Warn("payroll compute settings degraded to defaults",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Error(settingsErr),
		)
		resolved = settings.Resolve(settings.Partial{})
		degraded = append(degraded, SourceSettings)
	}
	if attErr != nil {
		s.logger.Warn("payroll compute overtime summary degraded to zero",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(attErr),
		)
		summary = attendance.OvertimeSummary{}
		degraded = append(degraded, SourceAttendance)
	}
	if loanErr != nil {
		s.logger.Warn("payroll compute loan list degraded to empty",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(loanErr),
		)
		loanRows = nil
		degraded = append(degraded, SourceLoans)
	}
	if advErr != nil {
		s.logger.Warn("payroll compute advance list degraded to empty",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(advErr),
		)
		advRows = nil
		degraded = append(degraded, SourceAdvances)
	}

	hours15 := summary.Hours15
	if req.Hours15 != nil {
		hours15 = *req.Hours15
	}
	hours50 := summary.Hours50
	if req.Hours50 != nil {
		hours50 = *req.Hours50
	}

	valuation, err := ValuateOvertime(emp.BaseSalary, hours15, hours50, resolved)
	if err != nil {
		return Breakdown{}, nil, err
	}

	cnssEmployee := ComputeContribution(valuation.Gross, resolved.CNSSSalarialRate, resolved.CNSSCeiling)
	cnssEmployer := ComputeContribution(valuation.Gross, resolved.CNSSEmployerRate, resolved.CNSSCeiling)
	rawTax := ComputeTax(valuation.Gross-cnssEmployee, resolved.Brackets)
	loanDeductions := SumLoanRepayments(req.EmployeeID, loanRows)
	advanceDeductions := SumAdvances(req.EmployeeID, req.Month, req.Year, advRows)

	breakdown := Assemble(
		valuation,
		cnssEmployee, cnssEmployer, rawTax, loanDeductions, advanceDeductions,
		hours15, hours50,
		resolved,
		degraded,
	)

	return breakdown, emp, nil
}

func (s *service) Record(
	ctx context.Context,
	companyID, actorID string,
	req ComputePayrollRequest,
) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	recordedBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	breakdown, emp, err := s.compute(ctx, companyID, req)
	if err != nil {
		return PayrollResponse{}, err
	}

	paramsJSON, err := json.Marshal(breakdown.ParametersUsed)
	if err != nil {
		return PayrollResponse{}, err
	}
	var degradedJSON []byte
	if len(breakdown.DegradedSources) > 0 {
		degradedJSON, err = json.Marshal(breakdown.DegradedSources)
		if err != nil {
			return PayrollResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Payroll{
		ID:                uuid.New(),
		CompanyID:         emp.CompanyID,
		EmployeeID:        emp.ID,
		Month:             req.Month,
		Year:              req.Year,
		BaseSalary:        breakdown.BaseSalary,
		Hours15:           breakdown.Hours15,
		Hours50:           breakdown.Hours50,
		OvertimeAmount15:  breakdown.OvertimeAmount15,
		OvertimeAmount50:  breakdown.OvertimeAmount50,
		GrossSalary:       breakdown.GrossSalary,
		CNSSEmployee:      breakdown.CNSSEmployee,
		CNSSEmployer:      breakdown.CNSSEmployer,
		TaxableNet:        breakdown.TaxableNet,
		ITS:               breakdown.ITS,
		LoanDeductions:    breakdown.LoanDeductions,
		AdvanceDeductions: breakdown.AdvanceDeductions,
		TotalDeductions:   breakdown.TotalDeductions,
		NetSalary:         breakdown.NetSalary,
		IsNegative:        breakdown.IsNegative,
		ParametersUsed:    paramsJSON,
		DegradedSources:   degradedJSON,
		Status:            StatusRecorded,
		RecordedBy:        recordedBy,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("record payroll persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollRecordedEvent{
			EventType:  "payroll_recorded",
			PayrollID:  row.ID.String(),
			CompanyID:  companyID,
			EmployeeID: emp.ID.String(),
			Month:      req.Month,
			Year:       req.Year,
			RecordedBy: actorID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("record payroll outbox persist failed",
				zap.String("payroll_id", row.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll recorded",
		zap.String("request_id", rid),
		zap.String("payroll_id", row.ID.String()),
		zap.String("employee_id", emp.ID.String()),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Bool("is_negative", breakdown.IsNegative),
	)

	return mapToResponse(*row, breakdown), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, row := range payrolls {
		resp[i] = mapRowToResponse(row)
	}
	return resp, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	return mapRowToResponse(*row), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if row.PayslipGeneratedAt != nil {
		return payrollerrors.ErrPayslipAlreadyGenerated
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) GeneratePayslip(
	ctx context.Context,
	companyID, id string,
) ([]byte, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if row.PayslipNumber == nil {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypePayslipNumber)
		if err != nil {
			s.logger.Error("generate payslip number failed",
				zap.String("payroll_id", id),
				zap.Error(err),
			)
			return nil, err
		}
		num := fmt.Sprintf("PAY-%06d", nextVal)
		row.PayslipNumber = &num
	}

	pdf, err := buildPayslipPDF(payslipLines(row))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row.PayslipGeneratedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("payslip generated",
		zap.String("payroll_id", id),
		zap.String("payslip_number", *row.PayslipNumber),
	)

	return pdf, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_period" {
			return payrollerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_period") {
		return payrollerrors.ErrDuplicatePeriod
	}

	return err
}

func mapToResponse(row Payroll, breakdown Breakdown) PayrollResponse {
	resp := PayrollResponse{
		ID:         row.ID.String(),
		CompanyID:  row.CompanyID.String(),
		EmployeeID: row.EmployeeID.String(),
		Month:      row.Month,
		Year:       row.Year,
		Status:     row.Status,
		RecordedBy: row.RecordedBy.String(),
		Breakdown:  breakdown,
	}

	if row.PayslipNumber != nil {
		resp.PayslipNumber = row.PayslipNumber
	}
	if row.PayslipGeneratedAt != nil {
		v := row.PayslipGeneratedAt.Format(time.RFC3339)
		resp.PayslipGeneratedAt = &v
	}

	return resp
}

// mapRowToResponse rebuilds the breakdown from the stored columns and
// snapshots, so reads return exactly what was recorded.
func mapRowToResponse(row Payroll) PayrollResponse {
	var params settings.Resolved
	if len(row.ParametersUsed) > 0 {
		_ = json.Unmarshal(row.ParametersUsed, &params)
	}
	var degraded []string
	if len(row.DegradedSources) > 0 {
		_ = json.Unmarshal(row.DegradedSources, &degraded)
	}

	hourlyRate := 0.0
	if params.WorkHoursPerDay > 0 && params.WorkDaysPerMonth > 0 {
		hourlyRate = row.BaseSalary / (params.WorkHoursPerDay * params.WorkDaysPerMonth)
	}

	breakdown := Breakdown{
		BaseSalary:        row.BaseSalary,
		Hours15:           row.Hours15,
		Hours50:           row.Hours50,
		HourlyRate:        hourlyRate,
		OvertimeAmount15:  row.OvertimeAmount15,
		OvertimeAmount50:  row.OvertimeAmount50,
		GrossSalary:       row.GrossSalary,
		CNSSEmployee:      row.CNSSEmployee,
		CNSSEmployer:      row.CNSSEmployer,
		TaxableNet:        row.TaxableNet,
		ITS:               row.ITS,
		LoanDeductions:    row.LoanDeductions,
		AdvanceDeductions: row.AdvanceDeductions,
		TotalDeductions:   row.TotalDeductions,
		NetSalary:         row.NetSalary,
		IsNegative:        row.IsNegative,
		ParametersUsed:    params,
		DegradedSources:   degraded,
	}

	return mapToResponse(row, breakdown)
}
