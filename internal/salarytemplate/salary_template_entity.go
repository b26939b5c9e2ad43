package salarytemplate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryTemplate is a named cascade formula. Percent fields are stored as
// percentages (50 means 50%), fixed fields as currency amounts.
type SalaryTemplate struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_templates_company_name"`
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_salary_templates_company_name"`
	Description       string          `gorm:"type:text"`
	BasicPercent      decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	HRAPercent        decimal.Decimal `gorm:"column:hra_percent;type:numeric(7,4);not null"`
	LTAPercent        decimal.Decimal `gorm:"column:lta_percent;type:numeric(7,4);not null"`
	PFEmployeePercent decimal.Decimal `gorm:"column:pf_employee_percent;type:numeric(7,4);not null"`
	PFEmployerPercent decimal.Decimal `gorm:"column:pf_employer_percent;type:numeric(7,4);not null"`
	StandardAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProfessionalTax   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SalaryTemplate) TableName() string {
	return "salary_templates"
}

// Rates is the formula part of a template, detached from storage.
type Rates struct {
	BasicPercent      decimal.Decimal `json:"basic_percent"`
	HRAPercent        decimal.Decimal `json:"hra_percent"`
	LTAPercent        decimal.Decimal `json:"lta_percent"`
	PFEmployeePercent decimal.Decimal `json:"pf_employee_percent"`
	PFEmployerPercent decimal.Decimal `json:"pf_employer_percent"`
	StandardAllowance decimal.Decimal `json:"standard_allowance"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`
}

// DefaultRates are the house defaults: basic 50% of wage, HRA 50% of basic,
// LTA 8.33% of wage, PF 12% of basic on both sides and professional tax 200.
func DefaultRates() Rates {
	return Rates{
		BasicPercent:      decimal.NewFromInt(50),
		HRAPercent:        decimal.NewFromInt(50),
		LTAPercent:        decimal.RequireFromString("8.33"),
		PFEmployeePercent: decimal.NewFromInt(12),
		PFEmployerPercent: decimal.NewFromInt(12),
		StandardAllowance: decimal.Zero,
		ProfessionalTax:   decimal.NewFromInt(200),
	}
}

func (t SalaryTemplate) Rates() Rates {
	return Rates{
		BasicPercent:      t.BasicPercent,
		HRAPercent:        t.HRAPercent,
		LTAPercent:        t.LTAPercent,
		PFEmployeePercent: t.PFEmployeePercent,
		PFEmployerPercent: t.PFEmployerPercent,
		StandardAllowance: t.StandardAllowance,
		ProfessionalTax:   t.ProfessionalTax,
	}
}

func (r Rates) hasNegative() bool {
	for _, v := range []decimal.Decimal{
		r.BasicPercent, r.HRAPercent, r.LTAPercent,
		r.PFEmployeePercent, r.PFEmployerPercent,
		r.StandardAllowance, r.ProfessionalTax,
	} {
		if v.IsNegative() {
			return true
		}
	}
	return false
}
