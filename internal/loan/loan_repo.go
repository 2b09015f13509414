package loan

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, loan *Loan) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Loan, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Loan, error)
	Update(ctx context.Context, loan *Loan) error
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

func (r *repository) Create(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Loan, error) {
	var loan Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) Update(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}
