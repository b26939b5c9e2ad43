package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/payslip/mock"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// queueReader hands out queued messages, then cancels the consumer.
type queueReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, context.Canceled
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *queueReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func batchMessage(t *testing.T, offset int64, event events.PayslipBatchRequestedEvent) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.PayslipBatchRequestedTopic, Offset: offset, Value: body}
}

func runConsumer(t *testing.T, svc payslip.Service, msgs ...kafkago.Message) *queueReader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &queueReader{queue: msgs, cancel: cancel}
	consumer.ConsumePayslipBatchRequested(ctx, reader, svc, zap.NewNop())
	return reader
}

func TestConsumePayslipBatchRequested(t *testing.T) {
	event := events.PayslipBatchRequestedEvent{
		EventType:      events.PayslipBatchRequestedEventType,
		RequestID:      "req-9",
		CompanyID:      "company-1",
		RequestedBy:    "user-1",
		PayPeriodStart: "2025-01-01",
		PayPeriodEnd:   "2025-01-31",
		EmployeeIDs:    []int64{1, 2},
	}

	t.Run("generates and commits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		svc.EXPECT().
			Generate(gomock.Any(), "company-1", "user-1", payslip.GeneratePayslipsRequest{
				PayPeriodStart: "2025-01-01",
				PayPeriodEnd:   "2025-01-31",
				EmployeeIDs:    []int64{1, 2},
			}).
			DoAndReturn(func(ctx context.Context, companyID, actorID string, req payslip.GeneratePayslipsRequest) (payslip.GeneratePayslipsResponse, error) {
				assert.Equal(t, "req-9", contextutil.GetRequestID(ctx))
				return payslip.GeneratePayslipsResponse{GeneratedCount: 2}, nil
			})

		reader := runConsumer(t, svc, batchMessage(t, 1, event))

		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable message is committed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		reader := runConsumer(t, svc, kafkago.Message{Offset: 2, Value: []byte("{")})

		assert.Len(t, reader.committed, 1)
	})

	t.Run("rejected batch is committed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		svc.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(payslip.GeneratePayslipsResponse{}, paysliperrors.ErrInvalidPeriod)

		reader := runConsumer(t, svc, batchMessage(t, 3, event))

		assert.Len(t, reader.committed, 1)
	})

	t.Run("infrastructure failure is retried before committing", func(t *testing.T) {
		defer consumer.SetRetryBackoff(time.Millisecond)()

		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		gomock.InOrder(
			svc.EXPECT().
				Generate(gomock.Any(), "company-1", "user-1", gomock.Any()).
				Return(payslip.GeneratePayslipsResponse{}, errors.New("connection refused")).
				Times(2),
			svc.EXPECT().
				Generate(gomock.Any(), "company-1", "user-1", gomock.Any()).
				Return(payslip.GeneratePayslipsResponse{GeneratedCount: 2}, nil),
		)

		reader := runConsumer(t, svc, batchMessage(t, 4, event))

		if assert.Len(t, reader.committed, 1) {
			assert.Equal(t, int64(4), reader.committed[0].Offset)
		}
	})

	t.Run("failing batch stays uncommitted on shutdown", func(t *testing.T) {
		defer consumer.SetRetryBackoff(time.Hour)()

		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &queueReader{queue: []kafkago.Message{batchMessage(t, 6, event)}, cancel: cancel}

		svc.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string, payslip.GeneratePayslipsRequest) (payslip.GeneratePayslipsResponse, error) {
				cancel()
				return payslip.GeneratePayslipsResponse{}, errors.New("connection refused")
			})

		consumer.ConsumePayslipBatchRequested(ctx, reader, svc, zap.NewNop())

		assert.Empty(t, reader.committed)
	})
}
