package salarystructure

import (
	salarystructureerrors "go-payroll/internal/salarystructure/errors"
	"go-payroll/internal/salarytemplate"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// Input is everything the cascade needs. Rates is nil when the structure has
// no template bound.
type Input struct {
	Rates                   *salarytemplate.Rates
	MonthlyWage             decimal.Decimal
	PerformanceBonusPercent decimal.Decimal
	FixedAllowance          decimal.Decimal
	OtherDeductions         decimal.Decimal
}

// Breakdown holds unrounded amounts; call Rounded before presenting or
// persisting them.
type Breakdown struct {
	MonthlyWage       decimal.Decimal
	YearlyWage        decimal.Decimal
	Basic             decimal.Decimal
	HRA               decimal.Decimal
	StandardAllowance decimal.Decimal
	PerformanceBonus  decimal.Decimal
	LTA               decimal.Decimal
	FixedAllowance    decimal.Decimal
	Gross             decimal.Decimal
	PFEmployee        decimal.Decimal
	PFEmployer        decimal.Decimal
	ProfessionalTax   decimal.Decimal
	OtherDeductions   decimal.Decimal
	TotalDeductions   decimal.Decimal
	Net               decimal.Decimal

	Rates                   salarytemplate.Rates
	PerformanceBonusPercent decimal.Decimal
	UsingDefaults           bool
}

// Calculate runs the cascade and refuses to guess rates: without a template it
// returns ErrTemplateRequired. Payslip generation only uses this path.
func Calculate(in Input) (Breakdown, error) {
	if in.Rates == nil {
		return Breakdown{}, salarystructureerrors.ErrTemplateRequired
	}
	return cascade(in, *in.Rates), nil
}

// CalculateWithDefaults is the display path. A missing template is replaced
// by salarytemplate.DefaultRates and the result is flagged UsingDefaults.
func CalculateWithDefaults(in Input) Breakdown {
	if in.Rates == nil {
		b := cascade(in, salarytemplate.DefaultRates())
		b.UsingDefaults = true
		return b
	}
	return cascade(in, *in.Rates)
}

func cascade(in Input, r salarytemplate.Rates) Breakdown {
	wage := in.MonthlyWage

	basic := percentOf(wage, r.BasicPercent)
	hra := percentOf(basic, r.HRAPercent)
	lta := percentOf(wage, r.LTAPercent)
	bonus := percentOf(wage, in.PerformanceBonusPercent)

	gross := basic.
		Add(hra).
		Add(r.StandardAllowance).
		Add(bonus).
		Add(lta).
		Add(in.FixedAllowance)

	pfEmployee := percentOf(basic, r.PFEmployeePercent)
	pfEmployer := percentOf(basic, r.PFEmployerPercent)

	totalDeductions := pfEmployee.Add(r.ProfessionalTax).Add(in.OtherDeductions)

	return Breakdown{
		MonthlyWage:             wage,
		YearlyWage:              wage.Mul(monthsPerYear),
		Basic:                   basic,
		HRA:                     hra,
		StandardAllowance:       r.StandardAllowance,
		PerformanceBonus:        bonus,
		LTA:                     lta,
		FixedAllowance:          in.FixedAllowance,
		Gross:                   gross,
		PFEmployee:              pfEmployee,
		PFEmployer:              pfEmployer,
		ProfessionalTax:         r.ProfessionalTax,
		OtherDeductions:         in.OtherDeductions,
		TotalDeductions:         totalDeductions,
		Net:                     gross.Sub(totalDeductions), // may go negative
		Rates:                   r,
		PerformanceBonusPercent: in.PerformanceBonusPercent,
	}
}

// Rounded returns a copy with every amount rounded half away from zero to 2
// decimal places. Rates are left as entered.
func (b Breakdown) Rounded() Breakdown {
	round := func(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

	b.MonthlyWage = round(b.MonthlyWage)
	b.YearlyWage = round(b.YearlyWage)
	b.Basic = round(b.Basic)
	b.HRA = round(b.HRA)
	b.StandardAllowance = round(b.StandardAllowance)
	b.PerformanceBonus = round(b.PerformanceBonus)
	b.LTA = round(b.LTA)
	b.FixedAllowance = round(b.FixedAllowance)
	b.Gross = round(b.Gross)
	b.PFEmployee = round(b.PFEmployee)
	b.PFEmployer = round(b.PFEmployer)
	b.ProfessionalTax = round(b.ProfessionalTax)
	b.OtherDeductions = round(b.OtherDeductions)
	b.TotalDeductions = round(b.TotalDeductions)
	b.Net = round(b.Net)
	return b
}

func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred)
}
