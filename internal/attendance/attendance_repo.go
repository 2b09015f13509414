package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, row *Attendance) error
	Update(ctx context.Context, row *Attendance) error
	FindByID(ctx context.Context, companyID, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	// SumOvertimeForMonth aggregates both overtime buckets over one calendar
	// month in a single query.
	SumOvertimeForMonth(ctx context.Context, companyID, employeeID string, month, year int) (OvertimeSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, row *Attendance) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) Update(ctx context.Context, row *Attendance) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Attendance, error) {
	var row Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var row Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		First(&row, "attendance_date = ?", date).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumOvertimeForMonth(ctx context.Context, companyID, employeeID string, month, year int) (OvertimeSummary, error) {
	var summary OvertimeSummary
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Where("EXTRACT(MONTH FROM attendance_date) = ? AND EXTRACT(YEAR FROM attendance_date) = ?", month, year).
		Select("COALESCE(SUM(overtime15_hours), 0) AS hours15, COALESCE(SUM(overtime50_hours), 0) AS hours50").
		Scan(&summary).Error
	return summary, err
}
