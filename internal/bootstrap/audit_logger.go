package bootstrap

import "context"

// AuditLogger records business events worth keeping apart from debug logs.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

const (
	AuditPayslipBatchGenerated = "PAYSLIP_BATCH_GENERATED"
	AuditPayslipBatchQueued    = "PAYSLIP_BATCH_QUEUED"
	AuditPayslipPaid           = "PAYSLIP_PAID"
	AuditServerShutdown        = "SERVER_SHUTDOWN"
)
