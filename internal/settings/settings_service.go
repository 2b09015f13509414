package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	settingserrors "go-payroll/internal/settings/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const resolvedCacheTTL = 5 * time.Minute

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (SettingsResponse, error)
	Upsert(ctx context.Context, companyID, actorID string, req UpsertSettingsRequest) (SettingsResponse, error)
	// ResolveForCompany returns fully populated settings for the company,
	// substituting documented defaults for anything missing. It only fails
	// on infrastructure errors, never on absent configuration.
	ResolveForCompany(ctx context.Context, companyID string) (Resolved, error)
}

type service struct {
	repo Repository
	rdb  *redis.Client // optional resolved-settings cache
	sf   singleflight.Group
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func NewServiceWithCache(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

func (s *service) Get(ctx context.Context, companyID string) (SettingsResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	row, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return SettingsResponse{}, err
	}

	partial := Partial{}
	if row != nil {
		partial = row.ToPartial()
	}

	return buildResponse(ctx, companyID, partial), nil
}

func (s *service) Upsert(
	ctx context.Context,
	companyID, actorID string,
	req UpsertSettingsRequest,
) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	var updatedBy *uuid.UUID
	if actorID != "" {
		actorUUID, err := uuid.Parse(actorID)
		if err == nil {
			updatedBy = &actorUUID
		}
	}

	// Writes reject malformed schedules outright; only the read path is
	// allowed to degrade to the flat-rate fallback.
	if _, err := ParseBrackets(req.ITSBrackets); err != nil {
		return SettingsResponse{}, apperror.Wrap(
			err,
			settingserrors.ErrInvalidBrackets.Code,
			settingserrors.ErrInvalidBrackets.Message,
			settingserrors.ErrInvalidBrackets.HTTPStatus,
		)
	}

	setting := &PayrollSetting{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		CNSSSalarialRate: req.CNSSSalarialRate,
		CNSSEmployerRate: req.CNSSEmployerRate,
		CNSSCeiling:      req.CNSSCeiling,
		OvertimeRate15:   req.OvertimeRate15,
		OvertimeRate50:   req.OvertimeRate50,
		WorkHoursPerDay:  req.WorkHoursPerDay,
		WorkDaysPerMonth: req.WorkDaysPerMonth,
		ITSBrackets:      []byte(req.ITSBrackets),
		UpdatedBy:        updatedBy,
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return SettingsResponse{}, err
	}

	s.invalidateCache(ctx, companyID)

	return buildResponse(ctx, companyID, setting.ToPartial()), nil
}

func (s *service) ResolveForCompany(ctx context.Context, companyID string) (Resolved, error) {
	if cached, ok := s.cachedResolved(ctx, companyID); ok {
		return cached, nil
	}

	// Concurrent computations for one company share a single settings load.
	v, err, _ := s.sf.Do(companyID, func() (any, error) {
		row, err := s.repo.FindByCompany(ctx, companyID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolved{}, err
		}

		partial := Partial{}
		if row != nil {
			partial = row.ToPartial()
		}

		resolved := Resolve(partial)
		brackets, bErr := ParseBrackets(partial.ITSBrackets)
		if bErr != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn(
				"stored its brackets are invalid, using flat-rate fallback",
				zap.String("company_id", companyID),
				zap.Error(bErr),
			)
		} else {
			resolved.Brackets = brackets
		}

		s.cacheResolved(ctx, companyID, resolved)
		return resolved, nil
	})
	if err != nil {
		return Resolved{}, err
	}

	return v.(Resolved), nil
}

func buildResponse(ctx context.Context, companyID string, partial Partial) SettingsResponse {
	resolved := Resolve(partial)
	bracketsValid := true

	brackets, err := ParseBrackets(partial.ITSBrackets)
	if err != nil {
		bracketsValid = false
		contextutil.GetLogger(ctx, zap.L()).Warn(
			"stored its brackets are invalid",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	} else {
		resolved.Brackets = brackets
	}

	return SettingsResponse{
		CompanyID:     companyID,
		Configured:    partial,
		Resolved:      resolved,
		BracketsValid: bracketsValid,
	}
}

func (s *service) cacheKey(companyID string) string {
	return fmt.Sprintf("payroll:settings:resolved:%s", companyID)
}

func (s *service) cachedResolved(ctx context.Context, companyID string) (Resolved, bool) {
	if s.rdb == nil {
		return Resolved{}, false
	}

	val, err := s.rdb.Get(ctx, s.cacheKey(companyID)).Result()
	if err != nil {
		return Resolved{}, false
	}

	var resolved Resolved
	if err := json.Unmarshal([]byte(val), &resolved); err != nil {
		return Resolved{}, false
	}
	return resolved, true
}

func (s *service) cacheResolved(ctx context.Context, companyID string, resolved Resolved) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(resolved)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, s.cacheKey(companyID), payload, resolvedCacheTTL).Err()
}

func (s *service) invalidateCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, s.cacheKey(companyID)).Err()
}
