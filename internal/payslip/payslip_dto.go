package payslip

import "encoding/json"

type GeneratePayslipsRequest struct {
	PayPeriodStart string  `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string  `json:"pay_period_end" binding:"required"`
	EmployeeIDs    []int64 `json:"employee_ids"`
}

type SkippedEmployee struct {
	EmployeeID int64  `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GeneratePayslipsResponse struct {
	Generated      []int64           `json:"generated"`
	GeneratedCount int               `json:"generated_count"`
	PayslipIDs     []string          `json:"payslip_ids"`
	Skipped        []SkippedEmployee `json:"skipped"`
	Message        string            `json:"message"`
}

type GenerationQueuedResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

type ListFilter struct {
	Year       int    `form:"year"`
	Month      int    `form:"month"`
	Status     string `form:"status"`
	EmployeeID int64  `form:"employee_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type MarkPaidRequest struct {
	PaymentDate string  `json:"payment_date"`
	Notes       *string `json:"notes"`
}

type PayslipResponse struct {
	ID                string          `json:"id"`
	EmployeeID        int64           `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	PayPeriodStart    string          `json:"pay_period_start"`
	PayPeriodEnd      string          `json:"pay_period_end"`
	TemplateName      string          `json:"template_name"`
	MonthlyWage       string          `json:"monthly_wage"`
	Basic             string          `json:"basic"`
	HRA               string          `json:"hra"`
	StandardAllowance string          `json:"standard_allowance"`
	PerformanceBonus  string          `json:"performance_bonus"`
	LTA               string          `json:"lta"`
	FixedAllowance    string          `json:"fixed_allowance"`
	GrossSalary       string          `json:"gross_salary"`
	PFDeduction       string          `json:"pf_deduction"`
	ProfessionalTax   string          `json:"professional_tax"`
	OtherDeductions   string          `json:"other_deductions"`
	TotalDeductions   string          `json:"total_deductions"`
	NetSalary         string          `json:"net_salary"`
	NetSalaryInWords  string          `json:"net_salary_in_words,omitempty"`
	PFEmployer        string          `json:"pf_employer"`
	Rates             json.RawMessage `json:"rates"`
	WorkingDays       int             `json:"working_days"`
	DaysWorked        int             `json:"days_worked"`
	Status            string          `json:"status"`
	PaymentDate       *string         `json:"payment_date,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         string          `json:"created_at"`
}
