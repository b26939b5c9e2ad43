package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewPendingEvent(t *testing.T) {
	ev, err := kafka.NewPendingEvent("req-1", "payslip", "ps-1", "payslip.generated", "topic.v1", map[string]any{"net": "100.00"})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"net":"100.00"}`, string(ev.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))

	_, err = kafka.NewPendingEvent("req-1", "payslip", "ps-1", "payslip.generated", "topic.v1", make(chan int))
	assert.Error(t, err)
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(badStatus), "invalid outbox status: queued")
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev := kafka.OutboxEvent{
		ID:            "6f0b0c4e-0000-4000-8000-000000000001",
		RequestID:     "req-1",
		AggregateType: "payslip",
		AggregateID:   "ps-1",
		EventType:     "payslip.generated",
		Topic:         "payroll.payslip.generated.v1",
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), ev))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	err = repo.Create(context.Background(), kafka.OutboxEvent{ID: "1", Topic: "t", Status: kafka.OutboxStatusPending})

	assert.EqualError(t, err, "outbox payload is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).
		AddRow("ev-1", "req-1", "payslip", "ps-1", "payslip.generated", "topic.a", []byte(`{}`), "pending", 0, now).
		AddRow("ev-2", "", "payslip_batch", "req-2", "payslip.batch.requested", "topic.b", []byte(`{}`), "failed", 2, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	if assert.Len(t, events, 2) {
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, 2, events[1].RetryCount)
		assert.Equal(t, "topic.b", events[1].Topic)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("ev-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("ev-2", kafka.OutboxStatusFailed, "broker down").
		WillReturnError(errors.New("db gone"))

	repo := kafka.NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(context.Background(), "ev-1"))
	assert.EqualError(t, repo.MarkFailed(context.Background(), "ev-2", "broker down"), "db gone")
	assert.NoError(t, mock.ExpectationsWereMet())
}
