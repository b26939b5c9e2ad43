package payslip

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GeneratePayslipsRequest) (GeneratePayslipsResponse, error)
	RequestGeneration(ctx context.Context, companyID, actorID string, req GeneratePayslipsRequest) (GenerationQueuedResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayslipResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
	MarkPaid(ctx context.Context, companyID, id string, req MarkPaidRequest) (PayslipResponse, error)
	RenderPDF(ctx context.Context, companyID, id string) ([]byte, PayslipResponse, error)
	Export(ctx context.Context, companyID string, filter ListFilter) ([]byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	generator *Generator
	outbox    kafka.OutboxRepository
	audit     bootstrap.AuditLogger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	generator *Generator,
	outbox kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		generator: generator,
		outbox:    outbox,
		audit:     audit,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req GeneratePayslipsRequest,
) (GeneratePayslipsResponse, error) {
	batch, err := parseBatch(companyID, actorID, req)
	if err != nil {
		return GeneratePayslipsResponse{}, err
	}
	batch.RequestID = contextutil.GetRequestID(ctx)

	outcomes, err := s.generator.Generate(ctx, batch)
	if err != nil {
		return GeneratePayslipsResponse{}, err
	}

	resp := Summarize(outcomes)
	s.auditLog(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditPayslipBatchGenerated,
		Message: resp.Message,
		Meta: map[string]any{
			"company_id":       companyID,
			"actor_id":         actorID,
			"pay_period_start": req.PayPeriodStart,
			"pay_period_end":   req.PayPeriodEnd,
			"generated_count":  resp.GeneratedCount,
			"skipped_count":    len(resp.Skipped),
		},
	})
	return resp, nil
}

// RequestGeneration validates the batch and queues it for the consumer.
func (s *service) RequestGeneration(
	ctx context.Context,
	companyID, actorID string,
	req GeneratePayslipsRequest,
) (GenerationQueuedResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	batch, err := parseBatch(companyID, actorID, req)
	if err != nil {
		return GenerationQueuedResponse{}, err
	}
	if len(batch.EmployeeIDs) > 0 {
		if batch.EmployeeIDs, err = normalizeEmployeeIDs(batch.EmployeeIDs); err != nil {
			return GenerationQueuedResponse{}, err
		}
	}

	requestID := contextutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	event, err := kafka.NewPendingEvent(
		requestID,
		"payslip_batch",
		requestID,
		events.PayslipBatchRequestedEventType,
		events.PayslipBatchRequestedTopic,
		events.PayslipBatchRequestedEvent{
			EventType:      events.PayslipBatchRequestedEventType,
			RequestID:      requestID,
			CompanyID:      companyID,
			RequestedBy:    actorID,
			PayPeriodStart: req.PayPeriodStart,
			PayPeriodEnd:   req.PayPeriodEnd,
			EmployeeIDs:    batch.EmployeeIDs,
			OccurredAt:     s.now().UTC(),
		},
	)
	if err != nil {
		return GenerationQueuedResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("queue payslip batch begin tx failed", zap.Error(err))
		return GenerationQueuedResponse{}, err
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("queue payslip batch outbox persist failed", zap.Error(err))
		return GenerationQueuedResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("queue payslip batch commit failed", zap.Error(err))
		return GenerationQueuedResponse{}, err
	}

	log.Info("payslip batch queued", zap.String("batch_request_id", requestID))
	s.auditLog(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditPayslipBatchQueued,
		Message: "Payslip generation queued",
		Meta: map[string]any{
			"company_id":       companyID,
			"actor_id":         actorID,
			"request_id":       requestID,
			"pay_period_start": req.PayPeriodStart,
			"pay_period_end":   req.PayPeriodEnd,
		},
	})

	return GenerationQueuedResponse{RequestID: requestID, Status: "queued"}, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListFilter,
) ([]PayslipResponse, response.PaginationMeta, error) {
	if err := validateListFilter(filter); err != nil {
		return nil, response.PaginationMeta{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	rows, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	resp := make([]PayslipResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp, response.NewPaginationMeta(total, filter.Page, filter.PageSize), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, err
	}

	resp := mapToResponse(*p)
	resp.NetSalaryInWords = amountInWords(p.NetSalary)
	return resp, nil
}

// MarkPaid moves a processed payslip to paid. Any other starting status is
// rejected so a payslip never goes backwards.
func (s *service) MarkPaid(
	ctx context.Context,
	companyID, id string,
	req MarkPaidRequest,
) (PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	paymentDate := s.today()
	if req.PaymentDate != "" {
		d, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return PayslipResponse{}, paysliperrors.ErrInvalidDateFormat
		}
		paymentDate = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("mark payslip paid begin tx failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	marked, err := qtx.MarkPaid(ctx, companyID, id, paymentDate, req.Notes)
	if err != nil {
		log.Error("mark payslip paid persist failed", zap.String("payslip_id", id), zap.Error(err))
		return PayslipResponse{}, err
	}

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	if !marked {
		log.Warn("mark payslip paid rejected", zap.String("payslip_id", id), zap.String("status", p.Status))
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	if err := tx.Commit(); err != nil {
		log.Error("mark payslip paid commit failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	s.auditLog(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditPayslipPaid,
		Message: "Payslip marked as paid",
		Meta: map[string]any{
			"company_id":   companyID,
			"payslip_id":   id,
			"employee_id":  p.EmployeeID,
			"payment_date": paymentDate.Format("2006-01-02"),
		},
	})
	return mapToResponse(*p), nil
}

func (s *service) RenderPDF(ctx context.Context, companyID, id string) ([]byte, PayslipResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, PayslipResponse{}, err
	}

	pdf, err := renderPDF(*p)
	if err != nil {
		return nil, PayslipResponse{}, err
	}
	return pdf, mapToResponse(*p), nil
}

func (s *service) Export(ctx context.Context, companyID string, filter ListFilter) ([]byte, error) {
	if err := validateListFilter(filter); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = 0, 0

	rows, _, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return renderRegister(rows)
}

func (s *service) find(ctx context.Context, companyID, id string) (*Payslip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, paysliperrors.ErrInvalidPayslipID
	}

	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) auditLog(ctx context.Context, entry bootstrap.AuditLog) {
	if s.audit != nil {
		s.audit.Log(ctx, entry)
	}
}

func parseBatch(companyID, actorID string, req GeneratePayslipsRequest) (Batch, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return Batch{}, paysliperrors.ErrInvalidCompanyID
	}

	start, err := time.Parse("2006-01-02", req.PayPeriodStart)
	if err != nil {
		return Batch{}, paysliperrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.PayPeriodEnd)
	if err != nil {
		return Batch{}, paysliperrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return Batch{}, paysliperrors.ErrInvalidPeriod
	}

	for _, id := range req.EmployeeIDs {
		if id <= 0 {
			return Batch{}, paysliperrors.ErrInvalidEmployeeID
		}
	}

	return Batch{
		CompanyID:   companyUUID,
		ActorID:     actorID,
		PeriodStart: start,
		PeriodEnd:   end,
		EmployeeIDs: req.EmployeeIDs,
	}, nil
}

func validateListFilter(f ListFilter) error {
	switch f.Status {
	case "", StatusPending, StatusProcessed, StatusPaid:
	default:
		return paysliperrors.ErrInvalidStatus
	}
	if f.Month != 0 && (f.Month < 1 || f.Month > 12 || f.Year == 0) {
		return paysliperrors.ErrInvalidMonth
	}
	return nil
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                p.ID.String(),
		EmployeeID:        p.EmployeeID,
		EmployeeName:      p.EmployeeName(),
		PayPeriodStart:    p.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:      p.PayPeriodEnd.Format("2006-01-02"),
		TemplateName:      p.TemplateName,
		MonthlyWage:       p.MonthlyWage.StringFixed(2),
		Basic:             p.Basic.StringFixed(2),
		HRA:               p.HRA.StringFixed(2),
		StandardAllowance: p.StandardAllowance.StringFixed(2),
		PerformanceBonus:  p.PerformanceBonus.StringFixed(2),
		LTA:               p.LTA.StringFixed(2),
		FixedAllowance:    p.FixedAllowance.StringFixed(2),
		GrossSalary:       p.GrossSalary.StringFixed(2),
		PFDeduction:       p.PFDeduction.StringFixed(2),
		ProfessionalTax:   p.ProfessionalTax.StringFixed(2),
		OtherDeductions:   p.OtherDeductions.StringFixed(2),
		TotalDeductions:   p.TotalDeductions.StringFixed(2),
		NetSalary:         p.NetSalary.StringFixed(2),
		PFEmployer:        p.PFEmployer.StringFixed(2),
		WorkingDays:       p.WorkingDays,
		DaysWorked:        p.DaysWorked,
		Status:            p.Status,
		Notes:             p.Notes,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if len(p.Rates) > 0 {
		resp.Rates = []byte(p.Rates)
	}
	if p.PaymentDate != nil {
		v := p.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}
	return resp
}

func exportFilename(f ListFilter) string {
	switch {
	case f.Year > 0 && f.Month > 0:
		return fmt.Sprintf("payslips_%04d_%02d.xlsx", f.Year, f.Month)
	case f.Year > 0:
		return fmt.Sprintf("payslips_%04d.xlsx", f.Year)
	default:
		return "payslips.xlsx"
	}
}
