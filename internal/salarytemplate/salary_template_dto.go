package salarytemplate

import "github.com/shopspring/decimal"

// CreateSalaryTemplateRequest leaves omitted rates at DefaultRates.
type CreateSalaryTemplateRequest struct {
	Name              string           `json:"name" binding:"required,max=100"`
	Description       string           `json:"description"`
	BasicPercent      *decimal.Decimal `json:"basic_percent"`
	HRAPercent        *decimal.Decimal `json:"hra_percent"`
	LTAPercent        *decimal.Decimal `json:"lta_percent"`
	PFEmployeePercent *decimal.Decimal `json:"pf_employee_percent"`
	PFEmployerPercent *decimal.Decimal `json:"pf_employer_percent"`
	StandardAllowance *decimal.Decimal `json:"standard_allowance"`
	ProfessionalTax   *decimal.Decimal `json:"professional_tax"`
}

// UpdateSalaryTemplateRequest only touches the fields that are present.
type UpdateSalaryTemplateRequest struct {
	Name              *string          `json:"name" binding:"omitempty,max=100"`
	Description       *string          `json:"description"`
	BasicPercent      *decimal.Decimal `json:"basic_percent"`
	HRAPercent        *decimal.Decimal `json:"hra_percent"`
	LTAPercent        *decimal.Decimal `json:"lta_percent"`
	PFEmployeePercent *decimal.Decimal `json:"pf_employee_percent"`
	PFEmployerPercent *decimal.Decimal `json:"pf_employer_percent"`
	StandardAllowance *decimal.Decimal `json:"standard_allowance"`
	ProfessionalTax   *decimal.Decimal `json:"professional_tax"`
}

type SalaryTemplateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rates
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
