package payslip

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"72611.00", "seventy-two thousand six hundred eleven and 00/100"},
		{"0.5", "zero and 50/100"},
		{"1000.456", "one thousand and 46/100"},
		{"-250.10", "minus two hundred fifty and 10/100"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, amountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestPdfEscape(t *testing.T) {
	assert.Equal(t, `Notes: \(bonus\) C:\\pay`, pdfEscape(`Notes: (bonus) C:\pay`))
}

func TestPayslipLines(t *testing.T) {
	paid := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	notes := "bank transfer"
	p := Payslip{
		EmployeeID:     7,
		PayPeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		TemplateName:   "Standard",
		NetSalary:      decimal.RequireFromString("72611"),
		Status:         StatusPaid,
		PaymentDate:    &paid,
		Notes:          &notes,
	}

	lines := payslipLines(p)
	text := strings.Join(lines, "\n")

	assert.Equal(t, "PAYSLIP", lines[0])
	assert.Contains(t, text, "Employee: #7")
	assert.Contains(t, text, "Period: 2025-01-01 to 2025-01-31")
	assert.Contains(t, text, "72611.00")
	assert.Contains(t, text, "Paid on: 2025-02-03")
	assert.Equal(t, "Notes: bank transfer", lines[len(lines)-1])

	p.Employee = &EmployeeRef{ID: 7, FullName: "Ravi (Ops)"}
	pdf, err := renderPDF(p)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4\n")))
	assert.Contains(t, string(pdf), `Employee: Ravi \(Ops\) \(#7\)`)
	assert.Contains(t, string(pdf), "/BaseFont /Courier")
}

func TestBuildSimplePDF_Empty(t *testing.T) {
	pdf, err := buildSimplePDF(nil)
	assert.NoError(t, err)
	assert.Contains(t, string(pdf), "(Payslip) Tj")
	assert.True(t, bytes.HasSuffix(pdf, []byte("%%EOF")))
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "payslips_2025_01.xlsx", exportFilename(ListFilter{Year: 2025, Month: 1}))
	assert.Equal(t, "payslips_2025.xlsx", exportFilename(ListFilter{Year: 2025}))
	assert.Equal(t, "payslips.xlsx", exportFilename(ListFilter{}))
}
