package settings

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByCompany(ctx context.Context, companyID string) (*PayrollSetting, error)
	Upsert(ctx context.Context, setting *PayrollSetting) error
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

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*PayrollSetting, error) {
	var setting PayrollSetting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) Upsert(ctx context.Context, setting *PayrollSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"cnss_salarial_rate",
				"cnss_employer_rate",
				"cnss_ceiling",
				"overtime_rate_15",
				"overtime_rate_50",
				"work_hours_per_day",
				"work_days_per_month",
				"its_brackets",
				"updated_by",
				"updated_at",
			}),
		}).
		Create(setting).Error
}
