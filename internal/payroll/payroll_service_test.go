package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/advance"
	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn   func(ctx context.Context, row *payroll.Payroll) error
	findAllFn  func(ctx context.Context, companyID string) ([]payroll.Payroll, error)
	findByIDFn func(ctx context.Context, companyID, id string) (*payroll.Payroll, error)
	updateFn   func(ctx context.Context, row *payroll.Payroll) error
	deleteFn   func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) Create(ctx context.Context, row *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.Payroll, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) Update(ctx context.Context, row *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

type fakeSettingsService struct {
	resolveFn func(ctx context.Context, companyID string) (settings.Resolved, error)
}

func (f *fakeSettingsService) Get(ctx context.Context, companyID string) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

func (f *fakeSettingsService) Upsert(ctx context.Context, companyID, actorID string, req settings.UpsertSettingsRequest) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

func (f *fakeSettingsService) ResolveForCompany(ctx context.Context, companyID string) (settings.Resolved, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, companyID)
	}
	return settings.Resolve(settings.Partial{}), nil
}

type fakeOvertimeRepository struct {
	sumOvertimeFn func(ctx context.Context, companyID, employeeID string, month, year int) (attendance.OvertimeSummary, error)
}

func (f *fakeOvertimeRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeOvertimeRepository) Create(ctx context.Context, row *attendance.Attendance) error {
	return nil
}

func (f *fakeOvertimeRepository) Update(ctx context.Context, row *attendance.Attendance) error {
	return nil
}

func (f *fakeOvertimeRepository) FindByID(ctx context.Context, companyID, id string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOvertimeRepository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOvertimeRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeOvertimeRepository) SumOvertimeForMonth(ctx context.Context, companyID, employeeID string, month, year int) (attendance.OvertimeSummary, error) {
	if f.sumOvertimeFn != nil {
		return f.sumOvertimeFn(ctx, companyID, employeeID, month, year)
	}
	return attendance.OvertimeSummary{}, nil
}

type fakeLoanListRepository struct {
	listByEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]loan.Loan, error)
}

func (f *fakeLoanListRepository) WithTx(tx *sql.Tx) loan.Repository { return f }

func (f *fakeLoanListRepository) Create(ctx context.Context, row *loan.Loan) error { return nil }

func (f *fakeLoanListRepository) FindAllByCompany(ctx context.Context, companyID string) ([]loan.Loan, error) {
	return nil, nil
}

func (f *fakeLoanListRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*loan.Loan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanListRepository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]loan.Loan, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLoanListRepository) Update(ctx context.Context, row *loan.Loan) error { return nil }

type fakeAdvanceListRepository struct {
	listByEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]advance.Advance, error)
}

func (f *fakeAdvanceListRepository) WithTx(tx *sql.Tx) advance.Repository { return f }

func (f *fakeAdvanceListRepository) Create(ctx context.Context, row *advance.Advance) error {
	return nil
}

func (f *fakeAdvanceListRepository) FindAllByCompany(ctx context.Context, companyID string) ([]advance.Advance, error) {
	return nil, nil
}

func (f *fakeAdvanceListRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*advance.Advance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdvanceListRepository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]advance.Advance, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeAdvanceListRepository) Update(ctx context.Context, row *advance.Advance) error {
	return nil
}

type fakeCounterRepository struct {
	nextValueFn func(ctx context.Context, companyID, counterType string) (int64, error)
	boundToTx   bool
}

func (f *fakeCounterRepository) WithTx(tx *sql.Tx) counter.Repository {
	f.boundToTx = tx != nil
	return f
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	if f.nextValueFn != nil {
		return f.nextValueFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceFixture struct {
	repo      *fakePayrollRepository
	employees *fakeEmployeeRepository
	settings  *fakeSettingsService
	overtime  *fakeOvertimeRepository
	loans     *fakeLoanListRepository
	advances  *fakeAdvanceListRepository
	counter   *fakeCounterRepository
	outbox    *fakeOutboxRepository
}

func newPayrollServiceFixture(companyID, employeeID uuid.UUID, baseSalary float64) *payrollServiceFixture {
	return &payrollServiceFixture{
		repo: &fakePayrollRepository{},
		employees: &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, gotCompanyID, id string) (*employee.Employee, error) {
				return &employee.Employee{
					ID:         employeeID,
					CompanyID:  companyID,
					FullName:   "Jane Doe",
					BaseSalary: baseSalary,
					IsActive:   true,
				}, nil
			},
		},
		settings: &fakeSettingsService{},
		overtime: &fakeOvertimeRepository{},
		loans:    &fakeLoanListRepository{},
		advances: &fakeAdvanceListRepository{},
		counter:  &fakeCounterRepository{},
		outbox:   &fakeOutboxRepository{},
	}
}

func (fx *payrollServiceFixture) build(t *testing.T) (payroll.Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := payroll.NewService(
		db,
		fx.repo,
		fx.employees,
		fx.settings,
		fx.overtime,
		fx.loans,
		fx.advances,
		fx.counter,
		fx.outbox,
	)
	return svc, mock
}

func TestPayrollService_Compute_DefaultScenario(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	svc, _ := fx.build(t)

	b, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, 500_000.0, b.GrossSalary)
	assert.Equal(t, 20_000.0, b.CNSSEmployee)
	assert.Equal(t, 86_000.0, b.ITS)
	assert.Equal(t, 394_000.0, b.NetSalary)
	assert.False(t, b.IsNegative)
	assert.Empty(t, b.DegradedSources)
}

func TestPayrollService_Compute_WithLoanAndAdvance(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.loans.listByEmployeeFn = func(ctx context.Context, gotCompanyID, gotEmployeeID string) ([]loan.Loan, error) {
		return []loan.Loan{
			{EmployeeID: employeeID, Status: loan.StatusActive, MonthlyRepayment: 30_000},
		}, nil
	}
	fx.advances.listByEmployeeFn = func(ctx context.Context, gotCompanyID, gotEmployeeID string) ([]advance.Advance, error) {
		return []advance.Advance{
			{EmployeeID: employeeID, Status: advance.StatusApproved, Amount: 15_000, DeductMonth: 3, DeductYear: 2026},
		}, nil
	}
	svc, _ := fx.build(t)

	b, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, 30_000.0, b.LoanDeductions)
	assert.Equal(t, 15_000.0, b.AdvanceDeductions)
	assert.Equal(t, 349_000.0, b.NetSalary)
}

func TestPayrollService_Compute_OvertimeFromAttendance(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.overtime.sumOvertimeFn = func(ctx context.Context, gotCompanyID, gotEmployeeID string, month, year int) (attendance.OvertimeSummary, error) {
		return attendance.OvertimeSummary{Hours15: 5}, nil
	}
	svc, _ := fx.build(t)

	b, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, 5.0, b.Hours15)
	assert.InDelta(t, 13_822.115, b.OvertimeAmount15, 0.01)
}

func TestPayrollService_Compute_HourOverridesWinOverAttendance(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.overtime.sumOvertimeFn = func(ctx context.Context, gotCompanyID, gotEmployeeID string, month, year int) (attendance.OvertimeSummary, error) {
		return attendance.OvertimeSummary{Hours15: 10, Hours50: 4}, nil
	}
	svc, _ := fx.build(t)

	b, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
		Hours15:    floatPtr(2),
		Hours50:    floatPtr(0),
	})

	assert.NoError(t, err)
	assert.Equal(t, 2.0, b.Hours15)
	assert.Zero(t, b.Hours50)
}

func TestPayrollService_Compute_DegradesCollaborators(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.settings.resolveFn = func(ctx context.Context, gotCompanyID string) (settings.Resolved, error) {
		return settings.Resolved{}, errors.New("redis down")
	}
	fx.loans.listByEmployeeFn = func(ctx context.Context, gotCompanyID, gotEmployeeID string) ([]loan.Loan, error) {
		return nil, errors.New("db timeout")
	}
	svc, _ := fx.build(t)

	b, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.Contains(t, b.DegradedSources, payroll.SourceSettings)
	assert.Contains(t, b.DegradedSources, payroll.SourceLoans)
	assert.Zero(t, b.LoanDeductions)
	// Degraded settings still compute on documented defaults.
	assert.Equal(t, 394_000.0, b.NetSalary)
}

func TestPayrollService_Compute_EmployeeFetchIsRequired(t *testing.T) {
	companyID := uuid.New()
	fx := newPayrollServiceFixture(companyID, uuid.New(), 500_000)
	fx.employees.findByIDFn = func(ctx context.Context, gotCompanyID, id string) (*employee.Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc, _ := fx.build(t)

	_, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      3,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestPayrollService_Compute_InactiveEmployee(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.employees.findByIDFn = func(ctx context.Context, gotCompanyID, id string) (*employee.Employee, error) {
		return &employee.Employee{ID: employeeID, CompanyID: companyID, BaseSalary: 500_000, IsActive: false}, nil
	}
	svc, _ := fx.build(t)

	_, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeInactive)
}

func TestPayrollService_Compute_ZeroBaseSalaryIsHardFailure(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	fx := newPayrollServiceFixture(companyID, employeeID, 0)
	svc, _ := fx.build(t)

	_, err := svc.Compute(context.Background(), companyID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidBaseSalary)
}

func TestPayrollService_Record_PersistsBreakdownAndOutboxEvent(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	actorID := uuid.New()

	var createdRow *payroll.Payroll
	var outboxEvent *kafka.OutboxEvent

	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.repo.createFn = func(ctx context.Context, row *payroll.Payroll) error {
		createdRow = row
		return nil
	}
	fx.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxEvent = &event
		return nil
	}

	svc, mock := fx.build(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Record(context.Background(), companyID.String(), actorID.String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusRecorded, resp.Status)
	assert.Equal(t, 394_000.0, resp.Breakdown.NetSalary)

	assert.NotNil(t, createdRow)
	assert.Equal(t, 394_000.0, createdRow.NetSalary)
	assert.Equal(t, 3, createdRow.Month)
	assert.Equal(t, 2026, createdRow.Year)
	assert.NotEmpty(t, createdRow.ParametersUsed)

	assert.NotNil(t, outboxEvent)
	assert.Equal(t, "payroll_recorded", outboxEvent.EventType)
	assert.Equal(t, createdRow.ID.String(), outboxEvent.AggregateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollService_Record_DuplicatePeriod(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	fx := newPayrollServiceFixture(companyID, employeeID, 500_000)
	fx.repo.createFn = func(ctx context.Context, row *payroll.Payroll) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_period"}
	}

	svc, mock := fx.build(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Record(context.Background(), companyID.String(), uuid.New().String(), payroll.ComputePayrollRequest{
		EmployeeID: employeeID.String(),
		Month:      3,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollService_GeneratePayslip_AssignsNumberOnce(t *testing.T) {
	companyID := uuid.New()
	rowID := uuid.New()

	var updated *payroll.Payroll

	fx := newPayrollServiceFixture(companyID, uuid.New(), 500_000)
	fx.repo.findByIDFn = func(ctx context.Context, gotCompanyID, id string) (*payroll.Payroll, error) {
		return &payroll.Payroll{
			ID:          rowID,
			CompanyID:   companyID,
			EmployeeID:  uuid.New(),
			Month:       3,
			Year:        2026,
			GrossSalary: 500_000,
			NetSalary:   394_000,
			Status:      payroll.StatusRecorded,
		}, nil
	}
	fx.repo.updateFn = func(ctx context.Context, row *payroll.Payroll) error {
		updated = row
		return nil
	}
	fx.counter.nextValueFn = func(ctx context.Context, gotCompanyID, counterType string) (int64, error) {
		return 7, nil
	}

	svc, mock := fx.build(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	pdf, err := svc.GeneratePayslip(context.Background(), companyID.String(), rowID.String())

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
	assert.NotNil(t, updated)
	assert.NotNil(t, updated.PayslipNumber)
	assert.Equal(t, "PAY-000007", *updated.PayslipNumber)
	assert.NotNil(t, updated.PayslipGeneratedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollService_GeneratePayslip_NumberingRollsBackWithRow(t *testing.T) {
	companyID := uuid.New()
	rowID := uuid.New()
	errUpdate := errors.New("update failed")

	fx := newPayrollServiceFixture(companyID, uuid.New(), 500_000)
	fx.repo.findByIDFn = func(ctx context.Context, gotCompanyID, id string) (*payroll.Payroll, error) {
		return &payroll.Payroll{
			ID:         rowID,
			CompanyID:  companyID,
			EmployeeID: uuid.New(),
			Month:      3,
			Year:       2026,
			Status:     payroll.StatusRecorded,
		}, nil
	}
	fx.repo.updateFn = func(ctx context.Context, row *payroll.Payroll) error {
		return errUpdate
	}
	fx.counter.nextValueFn = func(ctx context.Context, gotCompanyID, counterType string) (int64, error) {
		return 7, nil
	}

	svc, mock := fx.build(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.GeneratePayslip(context.Background(), companyID.String(), rowID.String())

	assert.ErrorIs(t, err, errUpdate)
	// The counter ran on the rolled-back transaction, so the consumed
	// value is released together with the unnumbered row.
	assert.True(t, fx.counter.boundToTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollService_Compute_InvalidCompanyID(t *testing.T) {
	fx := newPayrollServiceFixture(uuid.New(), uuid.New(), 500_000)
	svc, _ := fx.build(t)

	_, err := svc.Compute(context.Background(), "not-a-uuid", payroll.ComputePayrollRequest{
		EmployeeID: uuid.NewString(),
		Month:      3,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidCompanyID)
}

func TestPayrollService_Delete_RefusesAfterPayslip(t *testing.T) {
	companyID := uuid.New()
	rowID := uuid.New()
	generatedAt := time.Now().UTC()

	fx := newPayrollServiceFixture(companyID, uuid.New(), 500_000)
	fx.repo.findByIDFn = func(ctx context.Context, gotCompanyID, id string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: rowID, CompanyID: companyID, PayslipGeneratedAt: &generatedAt}, nil
	}

	svc, mock := fx.build(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), companyID.String(), rowID.String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayslipAlreadyGenerated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
