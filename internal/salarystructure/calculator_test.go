package salarystructure_test

import (
	"testing"

	"go-payroll/internal/salarystructure"
	salarystructureerrors "go-payroll/internal/salarystructure/errors"
	"go-payroll/internal/salarytemplate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), field)
}

func TestCalculate(t *testing.T) {
	rates := salarytemplate.DefaultRates()

	t.Run("default rates on 85000 wage", func(t *testing.T) {
		b, err := salarystructure.Calculate(salarystructure.Input{
			Rates:                   &rates,
			MonthlyWage:             d("85000"),
			PerformanceBonusPercent: d("8.33"),
		})
		assert.NoError(t, err)
		b = b.Rounded()

		assertAmount(t, "42500.00", b.Basic, "basic")
		assertAmount(t, "21250.00", b.HRA, "hra")
		assertAmount(t, "7080.50", b.LTA, "lta")
		assertAmount(t, "7080.50", b.PerformanceBonus, "bonus")
		assertAmount(t, "0.00", b.StandardAllowance, "standard allowance")
		assertAmount(t, "77911.00", b.Gross, "gross")
		assertAmount(t, "5100.00", b.PFEmployee, "pf employee")
		assertAmount(t, "5100.00", b.PFEmployer, "pf employer")
		assertAmount(t, "200.00", b.ProfessionalTax, "professional tax")
		assertAmount(t, "5300.00", b.TotalDeductions, "total deductions")
		assertAmount(t, "72611.00", b.Net, "net")
		assertAmount(t, "1020000.00", b.YearlyWage, "yearly wage")
		assert.False(t, b.UsingDefaults)
	})

	t.Run("employer pf stays out of deductions", func(t *testing.T) {
		custom := rates
		custom.PFEmployerPercent = d("13")

		b, err := salarystructure.Calculate(salarystructure.Input{
			Rates:       &custom,
			MonthlyWage: d("10000"),
		})
		assert.NoError(t, err)

		assertAmount(t, "650.00", b.PFEmployer, "pf employer")
		assertAmount(t, "600.00", b.PFEmployee, "pf employee")
		assertAmount(t, "800.00", b.TotalDeductions, "total deductions")
	})

	t.Run("fixed allowance and other deductions flow through", func(t *testing.T) {
		custom := rates
		custom.StandardAllowance = d("1500")

		b, err := salarystructure.Calculate(salarystructure.Input{
			Rates:           &custom,
			MonthlyWage:     d("20000"),
			FixedAllowance:  d("2500"),
			OtherDeductions: d("300"),
		})
		assert.NoError(t, err)
		b = b.Rounded()

		// 10000 + 5000 + 1500 + 0 + 1666 + 2500
		assertAmount(t, "20666.00", b.Gross, "gross")
		assertAmount(t, "1700.00", b.TotalDeductions, "total deductions")
		assertAmount(t, "18966.00", b.Net, "net")
	})

	t.Run("deductions above gross give a negative net", func(t *testing.T) {
		b, err := salarystructure.Calculate(salarystructure.Input{
			Rates:           &rates,
			MonthlyWage:     d("1000"),
			OtherDeductions: d("5000"),
		})
		assert.NoError(t, err)
		assert.True(t, b.Net.IsNegative())
	})

	t.Run("zero wage leaves only fixed components", func(t *testing.T) {
		b, err := salarystructure.Calculate(salarystructure.Input{
			Rates:       &rates,
			MonthlyWage: decimal.Zero,
		})
		assert.NoError(t, err)

		assertAmount(t, "0.00", b.Gross, "gross")
		assertAmount(t, "200.00", b.TotalDeductions, "total deductions")
		assertAmount(t, "-200.00", b.Net, "net")
	})

	t.Run("missing template is refused", func(t *testing.T) {
		_, err := salarystructure.Calculate(salarystructure.Input{MonthlyWage: d("85000")})
		assert.ErrorIs(t, err, salarystructureerrors.ErrTemplateRequired)
	})
}

func TestCalculateWithDefaults(t *testing.T) {
	t.Run("missing template falls back and is flagged", func(t *testing.T) {
		b := salarystructure.CalculateWithDefaults(salarystructure.Input{
			MonthlyWage:             d("85000"),
			PerformanceBonusPercent: d("8.33"),
		}).Rounded()

		assert.True(t, b.UsingDefaults)
		assertAmount(t, "72611.00", b.Net, "net")
		assert.True(t, b.Rates.BasicPercent.Equal(d("50")))
	})

	t.Run("bound template is used as is", func(t *testing.T) {
		rates := salarytemplate.DefaultRates()
		rates.BasicPercent = d("40")

		b := salarystructure.CalculateWithDefaults(salarystructure.Input{
			Rates:       &rates,
			MonthlyWage: d("10000"),
		})

		assert.False(t, b.UsingDefaults)
		assertAmount(t, "4000.00", b.Basic, "basic")
	})
}

func TestBreakdown_Rounded(t *testing.T) {
	rates := salarytemplate.DefaultRates()

	b, err := salarystructure.Calculate(salarystructure.Input{
		Rates:       &rates,
		MonthlyWage: d("1000.05"),
	})
	assert.NoError(t, err)

	// 500.025 before rounding, half rounds away from zero
	assert.Equal(t, "500.025", b.Basic.String())
	assert.Equal(t, "500.03", b.Rounded().Basic.String())
	assert.True(t, b.Rates.LTAPercent.Equal(b.Rounded().Rates.LTAPercent))
}

func TestSalaryStructure_CalcInput(t *testing.T) {
	st := salarystructure.SalaryStructure{MonthlyWage: d("5000")}
	assert.Nil(t, st.CalcInput().Rates)
	assert.Equal(t, "", st.TemplateName())

	st.Template = &salarytemplate.SalaryTemplate{Name: "Standard", BasicPercent: d("45")}
	in := st.CalcInput()
	if assert.NotNil(t, in.Rates) {
		assert.True(t, in.Rates.BasicPercent.Equal(d("45")))
	}
	assert.Equal(t, "Standard", st.TemplateName())
}
