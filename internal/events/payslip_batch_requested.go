package events

import "time"

const (
	PayslipBatchRequestedTopic     = "payroll.payslip.batch.requested.v1"
	PayslipBatchRequestedEventType = "payslip.batch.requested"
)

// PayslipBatchRequestedEvent asks the consumer to run a generation batch
// outside the request cycle. EmployeeIDs empty means every employee with an
// active salary structure.
type PayslipBatchRequestedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	CompanyID      string    `json:"company_id"`
	RequestedBy    string    `json:"requested_by"`
	PayPeriodStart string    `json:"pay_period_start"`
	PayPeriodEnd   string    `json:"pay_period_end"`
	EmployeeIDs    []int64   `json:"employee_ids,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
