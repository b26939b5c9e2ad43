package events

import "time"

const (
	PayslipGeneratedTopic     = "payroll.payslip.generated.v1"
	PayslipGeneratedEventType = "payslip.generated"
)

type PayslipGeneratedEvent struct {
	EventType      string    `json:"event_type"`
	PayslipID      string    `json:"payslip_id"`
	CompanyID      string    `json:"company_id"`
	EmployeeID     int64     `json:"employee_id"`
	PayPeriodStart string    `json:"pay_period_start"`
	PayPeriodEnd   string    `json:"pay_period_end"`
	NetSalary      string    `json:"net_salary"`
	OccurredAt     time.Time `json:"occurred_at"`
}
