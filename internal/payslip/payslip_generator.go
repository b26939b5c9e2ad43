package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/salarystructure"
	salarystructureerrors "go-payroll/internal/salarystructure/errors"
	"go-payroll/internal/salarytemplate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	SkipAlreadyGenerated  = "already generated"
	SkipNoActiveStructure = "no active salary structure"
	SkipNoTemplate        = "no template bound"
	SkipEmployeeNotFound  = "employee not found"

	DefaultGenerationWorkers = 4
)

type EmployeeDirectory interface {
	FindExistingIDs(ctx context.Context, companyID string, ids []int64) ([]int64, error)
	FindIDsWithActiveStructure(ctx context.Context, companyID string) ([]int64, error)
}

type StructureResolver interface {
	FindActiveByEmployee(ctx context.Context, companyID string, employeeID int64) (*salarystructure.SalaryStructure, error)
}

type AttendanceAggregator interface {
	Summarize(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (attendance.Summary, error)
}

// Batch is one validated generation request.
type Batch struct {
	RequestID   string
	CompanyID   uuid.UUID
	ActorID     string
	PeriodStart time.Time
	PeriodEnd   time.Time
	// EmployeeIDs empty means every employee with an active structure.
	EmployeeIDs []int64
}

// Outcome is the result for one employee. Reason is empty when a payslip
// was generated.
type Outcome struct {
	EmployeeID int64
	PayslipID  string
	Reason     string
}

func (o Outcome) Generated() bool {
	return o.Reason == ""
}

// RatesSnapshot is the audit document stored with every payslip.
type RatesSnapshot struct {
	salarytemplate.Rates
	PerformanceBonusPercent decimal.Decimal `json:"performance_bonus_percent"`
}

type Generator struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	employees  EmployeeDirectory
	structures StructureResolver
	attendance AttendanceAggregator
	workers    int
	logger     *zap.Logger
}

func NewGenerator(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	employees EmployeeDirectory,
	structures StructureResolver,
	attendance AttendanceAggregator,
	workers int,
	logger ...*zap.Logger,
) *Generator {
	l := zap.L().Named("payslip.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.generator")
	}
	if workers <= 0 {
		workers = DefaultGenerationWorkers
	}
	return &Generator{
		db:         db,
		repo:       repo,
		outbox:     outbox,
		employees:  employees,
		structures: structures,
		attendance: attendance,
		workers:    workers,
		logger:     l,
	}
}

// Generate runs every employee of the batch as an independent task and
// returns the outcomes sorted by employee id. An infrastructure error in any
// task stops scheduling new ones; tasks already running finish and keep
// their committed payslips.
func (g *Generator) Generate(ctx context.Context, b Batch) ([]Outcome, error) {
	if b.PeriodEnd.Before(b.PeriodStart) {
		return nil, paysliperrors.ErrInvalidPeriod
	}

	targets, missing, err := g.resolveTargets(ctx, b)
	if err != nil {
		return nil, err
	}

	log := g.logger.With(
		zap.String("request_id", b.RequestID),
		zap.String("company_id", b.CompanyID.String()),
		zap.String("period_start", b.PeriodStart.Format("2006-01-02")),
		zap.String("period_end", b.PeriodEnd.Format("2006-01-02")),
	)
	log.Info("payslip generation started", zap.Int("employees", len(targets)), zap.Int("workers", g.workers))

	outcomes := make([]Outcome, len(targets))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, employeeID := range targets {
		if egCtx.Err() != nil {
			break
		}
		i, employeeID := i, employeeID
		eg.Go(func() error {
			o, err := g.generateOne(ctx, b, employeeID)
			if err != nil {
				log.Error("payslip generation failed", zap.Int64("employee_id", employeeID), zap.Error(err))
				return fmt.Errorf("employee %d: %w", employeeID, err)
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, id := range missing {
		outcomes = append(outcomes, Outcome{EmployeeID: id, Reason: SkipEmployeeNotFound})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].EmployeeID < outcomes[j].EmployeeID
	})

	log.Info("payslip generation finished", zap.Int("generated", countGenerated(outcomes)), zap.Int("outcomes", len(outcomes)))
	return outcomes, nil
}

func (g *Generator) resolveTargets(ctx context.Context, b Batch) (targets, missing []int64, err error) {
	companyID := b.CompanyID.String()

	if len(b.EmployeeIDs) == 0 {
		targets, err = g.employees.FindIDsWithActiveStructure(ctx, companyID)
		return targets, nil, err
	}

	requested, err := normalizeEmployeeIDs(b.EmployeeIDs)
	if err != nil {
		return nil, nil, err
	}

	found, err := g.employees.FindExistingIDs(ctx, companyID, requested)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[int64]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := known[id]; ok {
			targets = append(targets, id)
		} else {
			missing = append(missing, id)
		}
	}
	return targets, missing, nil
}

func (g *Generator) generateOne(ctx context.Context, b Batch, employeeID int64) (Outcome, error) {
	companyID := b.CompanyID.String()
	skip := func(reason string) (Outcome, error) {
		return Outcome{EmployeeID: employeeID, Reason: reason}, nil
	}

	exists, err := g.repo.ExistsForPeriod(ctx, employeeID, b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		return skip(SkipAlreadyGenerated)
	}

	st, err := g.structures.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skip(SkipNoActiveStructure)
		}
		return Outcome{}, err
	}

	if st.Template == nil {
		return skip(SkipNoTemplate)
	}

	summary, err := g.attendance.Summarize(ctx, companyID, employeeID, b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return Outcome{}, err
	}

	breakdown, err := salarystructure.Calculate(st.CalcInput())
	if err != nil {
		if errors.Is(err, salarystructureerrors.ErrTemplateRequired) {
			return skip(SkipNoTemplate)
		}
		return Outcome{}, err
	}
	breakdown = breakdown.Rounded()

	rates, err := json.Marshal(RatesSnapshot{
		Rates:                   breakdown.Rates,
		PerformanceBonusPercent: breakdown.PerformanceBonusPercent,
	})
	if err != nil {
		return Outcome{}, err
	}

	p := &Payslip{
		ID:                uuid.New(),
		CompanyID:         b.CompanyID,
		EmployeeID:        employeeID,
		PayPeriodStart:    b.PeriodStart,
		PayPeriodEnd:      b.PeriodEnd,
		TemplateName:      st.TemplateName(),
		MonthlyWage:       breakdown.MonthlyWage,
		Basic:             breakdown.Basic,
		HRA:               breakdown.HRA,
		StandardAllowance: breakdown.StandardAllowance,
		PerformanceBonus:  breakdown.PerformanceBonus,
		LTA:               breakdown.LTA,
		FixedAllowance:    breakdown.FixedAllowance,
		GrossSalary:       breakdown.Gross,
		PFDeduction:       breakdown.PFEmployee,
		ProfessionalTax:   breakdown.ProfessionalTax,
		OtherDeductions:   breakdown.OtherDeductions,
		TotalDeductions:   breakdown.TotalDeductions,
		NetSalary:         breakdown.Net,
		PFEmployer:        breakdown.PFEmployer,
		Rates:             rates,
		WorkingDays:       summary.WorkingDays,
		DaysWorked:        summary.DaysWorked,
		Status:            StatusProcessed,
		CreatedBy:         b.ActorID,
	}

	created, err := g.persist(ctx, b, p)
	if err != nil {
		return Outcome{}, err
	}
	if !created {
		return skip(SkipAlreadyGenerated)
	}

	return Outcome{EmployeeID: employeeID, PayslipID: p.ID.String()}, nil
}

// persist writes the snapshot and its outbox event in one transaction. A
// concurrent insert for the same period reports created=false.
func (g *Generator) persist(ctx context.Context, b Batch, p *Payslip) (bool, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	created, err := g.repo.WithTx(tx).CreateIfAbsent(ctx, p)
	if err != nil {
		if isDuplicatePeriod(err) {
			return false, nil
		}
		return false, err
	}
	if !created {
		return false, nil
	}

	if g.outbox != nil {
		event, err := kafka.NewPendingEvent(
			b.RequestID,
			"payslip",
			p.ID.String(),
			events.PayslipGeneratedEventType,
			events.PayslipGeneratedTopic,
			events.PayslipGeneratedEvent{
				EventType:      events.PayslipGeneratedEventType,
				PayslipID:      p.ID.String(),
				CompanyID:      p.CompanyID.String(),
				EmployeeID:     p.EmployeeID,
				PayPeriodStart: p.PayPeriodStart.Format("2006-01-02"),
				PayPeriodEnd:   p.PayPeriodEnd.Format("2006-01-02"),
				NetSalary:      p.NetSalary.StringFixed(2),
				OccurredAt:     time.Now().UTC(),
			},
		)
		if err != nil {
			return false, err
		}
		if err := g.outbox.WithTx(tx).Create(ctx, event); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// normalizeEmployeeIDs rejects non-positive ids and returns the rest sorted
// without duplicates.
func normalizeEmployeeIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, paysliperrors.ErrInvalidEmployeeID
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func countGenerated(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Generated() {
			n++
		}
	}
	return n
}

// Summarize reduces outcomes into the response shape. Outcomes must already
// be sorted by employee id.
func Summarize(outcomes []Outcome) GeneratePayslipsResponse {
	resp := GeneratePayslipsResponse{
		Generated:  []int64{},
		PayslipIDs: []string{},
		Skipped:    []SkippedEmployee{},
	}
	for _, o := range outcomes {
		if o.Generated() {
			resp.Generated = append(resp.Generated, o.EmployeeID)
			resp.PayslipIDs = append(resp.PayslipIDs, o.PayslipID)
			continue
		}
		resp.Skipped = append(resp.Skipped, SkippedEmployee{EmployeeID: o.EmployeeID, Reason: o.Reason})
	}
	resp.GeneratedCount = len(resp.Generated)
	resp.Message = fmt.Sprintf("Generated %d payslips", resp.GeneratedCount)
	return resp
}
