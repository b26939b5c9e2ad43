package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	salarystructureerrors "go-payroll/internal/salarystructure/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
	GetBreakdown(ctx context.Context, companyID string, employeeID int64) (BreakdownResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidCompanyID
	}
	if req.EmployeeID <= 0 {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}

	st := &SalaryStructure{
		ID:                      uuid.New(),
		CompanyID:               companyUUID,
		EmployeeID:              req.EmployeeID,
		PerformanceBonusPercent: req.PerformanceBonusPercent,
		FixedAllowance:          req.FixedAllowance,
		OtherDeductions:         req.OtherDeductions,
		WorkingDaysPerWeek:      req.WorkingDaysPerWeek,
		BreakTimeHours:          DefaultBreakTimeHours,
		PayFrequency:            strings.TrimSpace(req.PayFrequency),
		IsActive:                true,
	}
	if req.MonthlyWage != nil {
		st.MonthlyWage = *req.MonthlyWage
	}
	if req.BreakTimeHours != nil {
		st.BreakTimeHours = *req.BreakTimeHours
	}
	if st.WorkingDaysPerWeek == 0 {
		st.WorkingDaysPerWeek = DefaultWorkingDaysPerWeek
	}
	if st.PayFrequency == "" {
		st.PayFrequency = PayFrequencyMonthly
	}

	st.EffectiveFrom = s.today()
	if req.EffectiveFrom != "" {
		if st.EffectiveFrom, err = time.Parse("2006-01-02", req.EffectiveFrom); err != nil {
			return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidDateFormat
		}
	}

	if req.TemplateID != nil && *req.TemplateID != "" {
		templateID, err := uuid.Parse(*req.TemplateID)
		if err != nil {
			return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidTemplateID
		}
		st.TemplateID = &templateID
	}

	if err := validateInputs(st); err != nil {
		return SalaryStructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary structure begin tx failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, companyID, req.EmployeeID)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	if !exists {
		return SalaryStructureResponse{}, salarystructureerrors.ErrEmployeeNotFound
	}

	if err := ensureTemplate(ctx, qtx, companyID, st.TemplateID); err != nil {
		return SalaryStructureResponse{}, err
	}

	hasActive, err := qtx.HasActiveForEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	if hasActive {
		log.Warn("create salary structure rejected, active one exists", zap.Int64("employee_id", req.EmployeeID))
		return SalaryStructureResponse{}, salarystructureerrors.ErrActiveStructureExists
	}

	// the partial unique index catches a concurrent create that passed the check above
	if err := qtx.Create(ctx, st); err != nil {
		log.Error("create salary structure persist failed", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary structure commit failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}

	log.Info("salary structure created",
		zap.String("structure_id", st.ID.String()),
		zap.Int64("employee_id", st.EmployeeID),
	)
	return mapToResponse(*st), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update salary structure begin tx failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	if !st.IsActive {
		return SalaryStructureResponse{}, salarystructureerrors.ErrStructureInactive
	}

	if req.TemplateID != nil {
		if *req.TemplateID == "" {
			st.TemplateID = nil
		} else {
			templateID, err := uuid.Parse(*req.TemplateID)
			if err != nil {
				return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidTemplateID
			}
			st.TemplateID = &templateID
		}
		st.Template = nil
	}
	if req.MonthlyWage != nil {
		st.MonthlyWage = *req.MonthlyWage
	}
	if req.PerformanceBonusPercent != nil {
		st.PerformanceBonusPercent = *req.PerformanceBonusPercent
	}
	if req.FixedAllowance != nil {
		st.FixedAllowance = *req.FixedAllowance
	}
	if req.OtherDeductions != nil {
		st.OtherDeductions = *req.OtherDeductions
	}
	if req.WorkingDaysPerWeek != nil {
		st.WorkingDaysPerWeek = *req.WorkingDaysPerWeek
	}
	if req.BreakTimeHours != nil {
		st.BreakTimeHours = *req.BreakTimeHours
	}
	if req.PayFrequency != nil {
		st.PayFrequency = strings.TrimSpace(*req.PayFrequency)
	}
	if req.EffectiveFrom != nil {
		if st.EffectiveFrom, err = time.Parse("2006-01-02", *req.EffectiveFrom); err != nil {
			return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidDateFormat
		}
	}

	if err := validateInputs(st); err != nil {
		return SalaryStructureResponse{}, err
	}
	if req.TemplateID != nil {
		if err := ensureTemplate(ctx, qtx, companyID, st.TemplateID); err != nil {
			return SalaryStructureResponse{}, err
		}
	}

	if err := qtx.Update(ctx, st); err != nil {
		log.Error("update salary structure persist failed", zap.String("structure_id", id), zap.Error(err))
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update salary structure commit failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}

	log.Info("salary structure updated", zap.String("structure_id", id))
	return mapToResponse(*st), nil
}

// Deactivate retires a structure so a new one can be created for the employee.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (SalaryStructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("deactivate salary structure begin tx failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	if !st.IsActive {
		return SalaryStructureResponse{}, salarystructureerrors.ErrStructureInactive
	}

	st.IsActive = false
	if err := qtx.Update(ctx, st); err != nil {
		log.Error("deactivate salary structure persist failed", zap.String("structure_id", id), zap.Error(err))
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("deactivate salary structure commit failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}

	log.Info("salary structure deactivated", zap.String("structure_id", id), zap.Int64("employee_id", st.EmployeeID))
	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SalaryStructureResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]SalaryStructureResponse, 0, len(rows))
	for _, st := range rows {
		resp = append(resp, mapToResponse(st))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	st, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*st), nil
}

// GetBreakdown computes the live salary view of an employee's active
// structure. A structure without a template is shown with the default rates.
func (s *service) GetBreakdown(ctx context.Context, companyID string, employeeID int64) (BreakdownResponse, error) {
	if employeeID <= 0 {
		return BreakdownResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}

	st, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BreakdownResponse{}, salarystructureerrors.ErrStructureNotFound
		}
		return BreakdownResponse{}, err
	}

	b := CalculateWithDefaults(st.CalcInput()).Rounded()
	return mapToBreakdownResponse(*st, b), nil
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ensureTemplate(ctx context.Context, repo Repository, companyID string, templateID *uuid.UUID) error {
	if templateID == nil {
		return nil
	}
	ok, err := repo.TemplateExists(ctx, companyID, templateID.String())
	if err != nil {
		return err
	}
	if !ok {
		return salarystructureerrors.ErrTemplateNotFound
	}
	return nil
}

func validateInputs(st *SalaryStructure) error {
	for _, v := range []decimal.Decimal{
		st.MonthlyWage,
		st.PerformanceBonusPercent,
		st.FixedAllowance,
		st.OtherDeductions,
		st.BreakTimeHours,
	} {
		if v.IsNegative() {
			return salarystructureerrors.ErrNegativeValue
		}
	}

	if st.WorkingDaysPerWeek < 1 || st.WorkingDaysPerWeek > 7 {
		return salarystructureerrors.ErrInvalidWorkingDays
	}

	switch st.PayFrequency {
	case PayFrequencyMonthly, PayFrequencyBiWeekly, PayFrequencyWeekly:
	default:
		return salarystructureerrors.ErrInvalidPayFrequency
	}
	return nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func mapToResponse(st SalaryStructure) SalaryStructureResponse {
	resp := SalaryStructureResponse{
		ID:                      st.ID.String(),
		EmployeeID:              st.EmployeeID,
		TemplateName:            st.TemplateName(),
		MonthlyWage:             money(st.MonthlyWage),
		PerformanceBonusPercent: st.PerformanceBonusPercent.String(),
		FixedAllowance:          money(st.FixedAllowance),
		OtherDeductions:         money(st.OtherDeductions),
		WorkingDaysPerWeek:      st.WorkingDaysPerWeek,
		BreakTimeHours:          st.BreakTimeHours.String(),
		PayFrequency:            st.PayFrequency,
		EffectiveFrom:           st.EffectiveFrom.Format("2006-01-02"),
		IsActive:                st.IsActive,
	}
	if st.TemplateID != nil {
		resp.TemplateID = st.TemplateID.String()
	}
	if st.Employee != nil {
		resp.EmployeeName = st.Employee.FullName
	}
	return resp
}

func mapToBreakdownResponse(st SalaryStructure, b Breakdown) BreakdownResponse {
	r := b.Rates
	return BreakdownResponse{
		StructureID:   st.ID.String(),
		EmployeeID:    st.EmployeeID,
		TemplateName:  st.TemplateName(),
		UsingDefaults: b.UsingDefaults,
		MonthlyWage:   money(b.MonthlyWage),
		YearlyWage:    money(b.YearlyWage),
		Earnings: map[string]ComponentLine{
			"basic":              {Amount: money(b.Basic), Percent: r.BasicPercent.String(), Basis: "wage"},
			"hra":                {Amount: money(b.HRA), Percent: r.HRAPercent.String(), Basis: "basic"},
			"standard_allowance": {Amount: money(b.StandardAllowance), Basis: "fixed"},
			"performance_bonus":  {Amount: money(b.PerformanceBonus), Percent: b.PerformanceBonusPercent.String(), Basis: "wage"},
			"lta":                {Amount: money(b.LTA), Percent: r.LTAPercent.String(), Basis: "wage"},
			"fixed_allowance":    {Amount: money(b.FixedAllowance), Basis: "fixed"},
		},
		Deductions: map[string]ComponentLine{
			"pf_employee":      {Amount: money(b.PFEmployee), Percent: r.PFEmployeePercent.String(), Basis: "basic"},
			"professional_tax": {Amount: money(b.ProfessionalTax), Basis: "fixed"},
			"other_deductions": {Amount: money(b.OtherDeductions), Basis: "fixed"},
		},
		EmployerContributions: map[string]ComponentLine{
			"pf_employer": {Amount: money(b.PFEmployer), Percent: r.PFEmployerPercent.String(), Basis: "basic"},
		},
		GrossSalary:        money(b.Gross),
		TotalDeductions:    money(b.TotalDeductions),
		NetSalary:          money(b.Net),
		WorkingDaysPerWeek: st.WorkingDaysPerWeek,
		BreakTimeHours:     st.BreakTimeHours.String(),
		PayFrequency:       st.PayFrequency,
	}
}
