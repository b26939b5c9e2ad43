package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// retryBackoff grows linearly per failed attempt up to maxRetryBackoff.
var (
	retryBackoff    = 2 * time.Second
	maxRetryBackoff = 30 * time.Second
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumePayslipBatchRequested runs queued generation batches until ctx is
// cancelled. Undecodable or invalid batches are committed and dropped.
// Infrastructure failures are retried in place until the batch succeeds, so
// the partition does not advance past it; a batch still failing at shutdown
// stays uncommitted and is redelivered to the next consumer. Generation skips
// payslips that already exist, so a replay only fills the gaps.
func ConsumePayslipBatchRequested(
	ctx context.Context,
	reader MessageReader,
	payslipService payslip.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_batch")
	log.Info("payslip batch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip batch consumer stopped")
				return
			}
			log.Error("fetch payslip batch message failed", zap.Error(err))
			continue
		}

		handlePayslipBatch(ctx, reader, msg, payslipService, log)
	}
}

func handlePayslipBatch(
	ctx context.Context,
	reader MessageReader,
	msg kafkago.Message,
	payslipService payslip.Service,
	log *zap.Logger,
) {
	var event events.PayslipBatchRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payslip batch event failed", zap.Error(err))
		commit(ctx, reader, msg, log)
		return
	}

	log = log.With(
		zap.String("request_id", event.RequestID),
		zap.String("company_id", event.CompanyID),
	)
	batchCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), log)

	req := payslip.GeneratePayslipsRequest{
		PayPeriodStart: event.PayPeriodStart,
		PayPeriodEnd:   event.PayPeriodEnd,
		EmployeeIDs:    event.EmployeeIDs,
	}

	for attempt := 1; ; attempt++ {
		resp, err := payslipService.Generate(batchCtx, event.CompanyID, event.RequestedBy, req)
		if err == nil {
			if !commit(ctx, reader, msg, log) {
				return
			}
			log.Info("payslip batch generated",
				zap.Int("generated_count", resp.GeneratedCount),
				zap.Int("skipped_count", len(resp.Skipped)),
				zap.Int("attempts", attempt),
			)
			return
		}

		if isRejected(err) {
			log.Warn("payslip batch rejected, dropping", zap.Error(err))
			commit(ctx, reader, msg, log)
			return
		}

		wait := min(time.Duration(attempt)*retryBackoff, maxRetryBackoff)
		log.Error("generate payslip batch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			log.Warn("payslip batch left uncommitted on shutdown", zap.Int64("offset", msg.Offset))
			return
		case <-time.After(wait):
		}
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit payslip batch message failed", zap.Error(err))
		return false
	}
	return true
}

// isRejected reports client errors that will fail the same way on every retry.
func isRejected(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError
}
