package config_test

import (
	"testing"
	"time"

	"go-payroll/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PAYROLL_GENERATION_WORKERS", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")
	t.Setenv("DB_SSLMODE", "")

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 4, cfg.Payroll.GenerationWorkers)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PAYROLL_GENERATION_WORKERS", "16")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("GENERATE_RATE_BURST", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 16, cfg.Payroll.GenerationWorkers)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 3, cfg.Payroll.GenerateRateBurst)
}
