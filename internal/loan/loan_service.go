package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	loanerrors "go-payroll/internal/loan/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLoanRequest) (LoanResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LoanResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateLoanStatusRequest) (LoanResponse, error)
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
	req CreateLoanRequest,
) (LoanResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidLoanID
	}

	if req.MonthlyRepayment > req.Principal {
		return LoanResponse{}, loanerrors.ErrRepaymentExceedsPrincipal
	}

	row := &Loan{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeID:       employeeUUID,
		Principal:        req.Principal,
		MonthlyRepayment: req.MonthlyRepayment,
		RemainingBalance: req.Principal,
		Status:           StatusActive,
		Reason:           req.Reason,
	}

	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return LoanResponse{}, errors.New("invalid date format, expected YYYY-MM-DD")
		}
		row.StartDate = &startDate
	}

	if err := qtx.Create(ctx, row); err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return LoanResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]LoanResponse, error) {
	loans, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(loans), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (LoanResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(
	ctx context.Context,
	companyID, employeeID string,
) ([]LoanResponse, error) {
	loans, err := s.repo.ListByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(loans), nil
}

func (s *service) UpdateStatus(
	ctx context.Context,
	companyID, id string,
	req UpdateLoanStatusRequest,
) (LoanResponse, error) {
	switch req.Status {
	case StatusActive, StatusPaidOff, StatusSuspended:
	default:
		return LoanResponse{}, loanerrors.ErrInvalidLoanStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}

	row.Status = req.Status

	if err := qtx.Update(ctx, row); err != nil {
		return LoanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return LoanResponse{}, err
	}

	return mapToResponse(*row), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanerrors.ErrLoanNotFound
	}
	return err
}

func mapToResponse(row Loan) LoanResponse {
	resp := LoanResponse{
		ID:               row.ID.String(),
		CompanyID:        row.CompanyID.String(),
		EmployeeID:       row.EmployeeID.String(),
		Principal:        row.Principal,
		MonthlyRepayment: row.MonthlyRepayment,
		RemainingBalance: row.RemainingBalance,
		Status:           row.Status,
		Reason:           row.Reason,
	}
	if row.StartDate != nil {
		v := row.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	return resp
}

func mapToListResponse(loans []Loan) []LoanResponse {
	resp := make([]LoanResponse, len(loans))
	for i, row := range loans {
		resp[i] = mapToResponse(row)
	}
	return resp
}
