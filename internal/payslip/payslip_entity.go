package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

// Payslip is the frozen result of one generation run for one employee and
// period. Amounts are never recomputed after insert; only status, payment
// date and notes move.
type Payslip struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_payslips_company_status"`
	EmployeeID     int64        `gorm:"not null;uniqueIndex:uq_payslips_employee_period"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	PayPeriodStart time.Time    `gorm:"type:date;not null;uniqueIndex:uq_payslips_employee_period"`
	PayPeriodEnd   time.Time    `gorm:"type:date;not null;uniqueIndex:uq_payslips_employee_period"`
	TemplateName   string       `gorm:"type:varchar(100);not null"`

	MonthlyWage       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Basic             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	HRA               decimal.Decimal `gorm:"column:hra;type:numeric(14,2);not null"`
	StandardAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PerformanceBonus  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LTA               decimal.Decimal `gorm:"column:lta;type:numeric(14,2);not null"`
	FixedAllowance    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GrossSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PFDeduction       decimal.Decimal `gorm:"column:pf_deduction;type:numeric(14,2);not null"`
	ProfessionalTax   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OtherDeductions   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PFEmployer        decimal.Decimal `gorm:"column:pf_employer;type:numeric(14,2);not null"`

	// Rates holds the template rates and bonus percent the amounts came from.
	Rates datatypes.JSON `gorm:"type:jsonb;not null"`

	WorkingDays int        `gorm:"not null"`
	DaysWorked  int        `gorm:"not null"`
	Status      string     `gorm:"type:varchar(20);not null;index:idx_payslips_company_status"`
	PaymentDate *time.Time `gorm:"type:date"`
	Notes       *string    `gorm:"type:text"`
	CreatedBy   string     `gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

type EmployeeRef struct {
	ID           int64  `gorm:"primaryKey"`
	EmployeeCode string `gorm:"column:employee_code"`
	FullName     string `gorm:"column:full_name"`
	Department   string `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (p Payslip) EmployeeName() string {
	if p.Employee == nil {
		return ""
	}
	return p.Employee.FullName
}
