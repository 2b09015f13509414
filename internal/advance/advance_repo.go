package advance

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=advance_repo.go -destination=mock/advance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, adv *Advance) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Advance, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Advance, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error)
	Update(ctx context.Context, adv *Advance) error
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

func (r *repository) Create(ctx context.Context, adv *Advance) error {
	return r.db.WithContext(ctx).Create(adv).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Advance, error) {
	var advances []Advance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Advance, error) {
	var adv Advance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&adv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &adv, nil
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error) {
	var advances []Advance
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Order("deduct_year ASC, deduct_month ASC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) Update(ctx context.Context, adv *Advance) error {
	return r.db.WithContext(ctx).Save(adv).Error
}
