package salarystructure

import (
	"time"

	"go-payroll/internal/salarytemplate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayFrequencyMonthly  = "monthly"
	PayFrequencyBiWeekly = "bi_weekly"
	PayFrequencyWeekly   = "weekly"

	DefaultWorkingDaysPerWeek = 5
)

var DefaultBreakTimeHours = decimal.NewFromInt(1)

// SalaryStructure binds one employee to a template plus their own inputs. Only
// inputs are stored; amounts are derived on read.
type SalaryStructure struct {
	ID                      uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	CompanyID               uuid.UUID                      `gorm:"type:uuid;not null;index"`
	EmployeeID              int64                          `gorm:"not null;index:uq_salary_structures_active_employee,unique,where:is_active = true"`
	Employee                *EmployeeRef                   `gorm:"foreignKey:EmployeeID;references:ID"`
	TemplateID              *uuid.UUID                     `gorm:"type:uuid;index"`
	Template                *salarytemplate.SalaryTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL"`
	MonthlyWage             decimal.Decimal                `gorm:"type:numeric(14,2);not null"`
	PerformanceBonusPercent decimal.Decimal                `gorm:"type:numeric(7,4);not null"`
	FixedAllowance          decimal.Decimal                `gorm:"type:numeric(14,2);not null"`
	OtherDeductions         decimal.Decimal                `gorm:"type:numeric(14,2);not null"`
	WorkingDaysPerWeek      int                            `gorm:"not null"`
	BreakTimeHours          decimal.Decimal                `gorm:"type:numeric(4,2);not null"`
	PayFrequency            string                         `gorm:"type:varchar(20);not null"`
	EffectiveFrom           time.Time                      `gorm:"type:date;not null"`
	IsActive                bool                           `gorm:"not null;index"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

type EmployeeRef struct {
	ID       int64  `gorm:"primaryKey"`
	FullName string `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// CalcInput feeds the structure into the cascade calculator.
func (s SalaryStructure) CalcInput() Input {
	in := Input{
		MonthlyWage:             s.MonthlyWage,
		PerformanceBonusPercent: s.PerformanceBonusPercent,
		FixedAllowance:          s.FixedAllowance,
		OtherDeductions:         s.OtherDeductions,
	}
	if s.Template != nil {
		rates := s.Template.Rates()
		in.Rates = &rates
	}
	return in
}

func (s SalaryStructure) TemplateName() string {
	if s.Template == nil {
		return ""
	}
	return s.Template.Name
}
