package salarystructure

import "github.com/shopspring/decimal"

type CreateSalaryStructureRequest struct {
	EmployeeID              int64            `json:"employee_id" binding:"required,gt=0"`
	TemplateID              *string          `json:"template_id" binding:"omitempty,uuid"`
	MonthlyWage             *decimal.Decimal `json:"monthly_wage" binding:"required"`
	PerformanceBonusPercent decimal.Decimal  `json:"performance_bonus_percent"`
	FixedAllowance          decimal.Decimal  `json:"fixed_allowance"`
	OtherDeductions         decimal.Decimal  `json:"other_deductions"`
	WorkingDaysPerWeek      int              `json:"working_days_per_week"`
	BreakTimeHours          *decimal.Decimal `json:"break_time_hours"`
	PayFrequency            string           `json:"pay_frequency"`
	EffectiveFrom           string           `json:"effective_from"`
}

// UpdateSalaryStructureRequest patches present fields. An empty template_id
// unbinds the template.
type UpdateSalaryStructureRequest struct {
	TemplateID              *string          `json:"template_id"`
	MonthlyWage             *decimal.Decimal `json:"monthly_wage"`
	PerformanceBonusPercent *decimal.Decimal `json:"performance_bonus_percent"`
	FixedAllowance          *decimal.Decimal `json:"fixed_allowance"`
	OtherDeductions         *decimal.Decimal `json:"other_deductions"`
	WorkingDaysPerWeek      *int             `json:"working_days_per_week"`
	BreakTimeHours          *decimal.Decimal `json:"break_time_hours"`
	PayFrequency            *string          `json:"pay_frequency"`
	EffectiveFrom           *string          `json:"effective_from"`
}

type ListFilter struct {
	EmployeeID int64 `form:"employee_id"`
	ActiveOnly bool  `form:"active_only"`
}

type SalaryStructureResponse struct {
	ID                      string `json:"id"`
	EmployeeID              int64  `json:"employee_id"`
	EmployeeName            string `json:"employee_name,omitempty"`
	TemplateID              string `json:"template_id,omitempty"`
	TemplateName            string `json:"template_name,omitempty"`
	MonthlyWage             string `json:"monthly_wage"`
	PerformanceBonusPercent string `json:"performance_bonus_percent"`
	FixedAllowance          string `json:"fixed_allowance"`
	OtherDeductions         string `json:"other_deductions"`
	WorkingDaysPerWeek      int    `json:"working_days_per_week"`
	BreakTimeHours          string `json:"break_time_hours"`
	PayFrequency            string `json:"pay_frequency"`
	EffectiveFrom           string `json:"effective_from"`
	IsActive                bool   `json:"is_active"`
}

type ComponentLine struct {
	Amount  string `json:"amount"`
	Percent string `json:"percent,omitempty"`
	Basis   string `json:"basis,omitempty"`
}

type BreakdownResponse struct {
	StructureID           string                   `json:"structure_id"`
	EmployeeID            int64                    `json:"employee_id"`
	TemplateName          string                   `json:"template_name,omitempty"`
	UsingDefaults         bool                     `json:"using_defaults"`
	MonthlyWage           string                   `json:"monthly_wage"`
	YearlyWage            string                   `json:"yearly_wage"`
	Earnings              map[string]ComponentLine `json:"earnings"`
	Deductions            map[string]ComponentLine `json:"deductions"`
	EmployerContributions map[string]ComponentLine `json:"employer_contributions"`
	GrossSalary           string                   `json:"gross_salary"`
	TotalDeductions       string                   `json:"total_deductions"`
	NetSalary             string                   `json:"net_salary"`
	WorkingDaysPerWeek    int                      `json:"working_days_per_week"`
	BreakTimeHours        string                   `json:"break_time_hours"`
	PayFrequency          string                   `json:"pay_frequency"`
}
