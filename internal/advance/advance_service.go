package advance

import (
	"context"
	"database/sql"
	"errors"

	advanceerrors "go-payroll/internal/advance/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=advance_service.go -destination=mock/advance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAll(ctx context.Context, companyID string) ([]AdvanceResponse, error)
	GetByID(ctx context.Context, companyID, id string) (AdvanceResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]AdvanceResponse, error)
	Review(ctx context.Context, companyID, reviewerID, id string, req ReviewAdvanceRequest) (AdvanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateAdvanceRequest,
) (AdvanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}

	if req.DeductMonth < 1 || req.DeductMonth > 12 || req.DeductYear < 2000 {
		return AdvanceResponse{}, advanceerrors.ErrInvalidDeductPeriod
	}

	row := &Advance{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		Amount:      req.Amount,
		DeductMonth: req.DeductMonth,
		DeductYear:  req.DeductYear,
		Status:      StatusPending,
		Reason:      req.Reason,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AdvanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]AdvanceResponse, error) {
	advances, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(advances), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (AdvanceResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(
	ctx context.Context,
	companyID, employeeID string,
) ([]AdvanceResponse, error) {
	advances, err := s.repo.ListByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(advances), nil
}

func (s *service) Review(
	ctx context.Context,
	companyID, reviewerID, id string,
	req ReviewAdvanceRequest,
) (AdvanceResponse, error) {
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	if row.Status != StatusPending {
		return AdvanceResponse{}, advanceerrors.ErrAdvanceNotPending
	}

	if req.Approve {
		row.Status = StatusApproved
	} else {
		row.Status = StatusRejected
	}
	row.ApprovedBy = &reviewerUUID

	if err := qtx.Update(ctx, row); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AdvanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return advanceerrors.ErrAdvanceNotFound
	}
	return err
}

func mapToResponse(row Advance) AdvanceResponse {
	resp := AdvanceResponse{
		ID:          row.ID.String(),
		CompanyID:   row.CompanyID.String(),
		EmployeeID:  row.EmployeeID.String(),
		Amount:      row.Amount,
		DeductMonth: row.DeductMonth,
		DeductYear:  row.DeductYear,
		Status:      row.Status,
		Reason:      row.Reason,
	}
	if row.ApprovedBy != nil {
		v := row.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}

func mapToListResponse(advances []Advance) []AdvanceResponse {
	resp := make([]AdvanceResponse, len(advances))
	for i, row := range advances {
		resp[i] = mapToResponse(row)
	}
	return resp
}
