package salarytemplate

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	salarytemplateerrors "go-payroll/internal/salarytemplate/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const TemplateListKeyPrefix = "payroll:salary_templates:"

func GetTemplateListKey(companyID string) string {
	return TemplateListKeyPrefix + companyID
}

//go:generate mockgen -source=salary_template_service.go -destination=mock/salary_template_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryTemplateRequest) (SalaryTemplateResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryTemplateResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryTemplateResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryTemplateRequest) (SalaryTemplateResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarytemplate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarytemplate.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryTemplateRequest,
) (SalaryTemplateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrInvalidCompanyID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return SalaryTemplateResponse{}, apperror.RequiredField("name")
	}

	rates := DefaultRates()
	applyRates(&rates, req.BasicPercent, req.HRAPercent, req.LTAPercent,
		req.PFEmployeePercent, req.PFEmployerPercent, req.StandardAllowance, req.ProfessionalTax)
	if rates.hasNegative() {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrNegativeValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary template begin tx failed", zap.Error(err))
		return SalaryTemplateResponse{}, err
	}
	defer tx.Rollback()

	t := &SalaryTemplate{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	t.setRates(rates)

	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		log.Error("create salary template persist failed", zap.Error(err))
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary template commit failed", zap.Error(err))
		return SalaryTemplateResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	log.Info("salary template created", zap.String("template_id", t.ID.String()), zap.String("name", t.Name))

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SalaryTemplateResponse, error) {
	cacheKey := GetTemplateListKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []SalaryTemplateResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		templates, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(templates)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute).Err(); err != nil {
					s.logger.Warn("cache salary templates failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]SalaryTemplateResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryTemplateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrInvalidTemplateID
	}

	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*t), nil
}

// Update rewrites a template in place. Every structure bound to it picks up
// the new rates on its next computation; existing payslips keep their
// frozen snapshot.
func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryTemplateRequest,
) (SalaryTemplateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrInvalidTemplateID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update salary template begin tx failed", zap.Error(err))
		return SalaryTemplateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return SalaryTemplateResponse{}, apperror.RequiredField("name")
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}

	rates := t.Rates()
	applyRates(&rates, req.BasicPercent, req.HRAPercent, req.LTAPercent,
		req.PFEmployeePercent, req.PFEmployerPercent, req.StandardAllowance, req.ProfessionalTax)
	if rates.hasNegative() {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrNegativeValue
	}
	t.setRates(rates)

	if err := qtx.Update(ctx, t); err != nil {
		log.Error("update salary template persist failed", zap.String("template_id", id), zap.Error(err))
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update salary template commit failed", zap.Error(err))
		return SalaryTemplateResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	log.Info("salary template updated", zap.String("template_id", id))

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return salarytemplateerrors.ErrInvalidTemplateID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete salary template begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inUse, err := qtx.IsReferencedByActiveStructure(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse {
		log.Warn("delete salary template rejected, still bound", zap.String("template_id", id))
		return salarytemplateerrors.ErrTemplateInUse
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete salary template commit failed", zap.Error(err))
		return err
	}

	s.invalidateList(ctx, companyID)
	log.Info("salary template deleted", zap.String("template_id", id))
	return nil
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetTemplateListKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate salary template cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyRates(r *Rates, basic, hra, lta, pfEmp, pfEr, std, profTax *decimal.Decimal) {
	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.BasicPercent, basic)
	set(&r.HRAPercent, hra)
	set(&r.LTAPercent, lta)
	set(&r.PFEmployeePercent, pfEmp)
	set(&r.PFEmployerPercent, pfEr)
	set(&r.StandardAllowance, std)
	set(&r.ProfessionalTax, profTax)
}

func (t *SalaryTemplate) setRates(r Rates) {
	t.BasicPercent = r.BasicPercent
	t.HRAPercent = r.HRAPercent
	t.LTAPercent = r.LTAPercent
	t.PFEmployeePercent = r.PFEmployeePercent
	t.PFEmployerPercent = r.PFEmployerPercent
	t.StandardAllowance = r.StandardAllowance
	t.ProfessionalTax = r.ProfessionalTax
}

func mapToResponse(t SalaryTemplate) SalaryTemplateResponse {
	return SalaryTemplateResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Rates:       t.Rates(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(templates []SalaryTemplate) []SalaryTemplateResponse {
	resp := make([]SalaryTemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, mapToResponse(t))
	}
	return resp
}
