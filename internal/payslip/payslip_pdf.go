package payslip

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// renderPDF lays the snapshot out as a single page of Courier text lines.
func renderPDF(p Payslip) ([]byte, error) {
	return buildSimplePDF(payslipLines(p))
}

func payslipLines(p Payslip) []string {
	row := func(label string, amount decimal.Decimal) string {
		return fmt.Sprintf("%-28s %14s", label, amount.StringFixed(2))
	}

	employee := fmt.Sprintf("Employee: #%d", p.EmployeeID)
	if name := p.EmployeeName(); name != "" {
		employee = fmt.Sprintf("Employee: %s (#%d)", name, p.EmployeeID)
	}

	lines := []string{
		"PAYSLIP",
		employee,
		fmt.Sprintf("Period: %s to %s", p.PayPeriodStart.Format("2006-01-02"), p.PayPeriodEnd.Format("2006-01-02")),
		fmt.Sprintf("Template: %s", p.TemplateName),
		fmt.Sprintf("Working days: %d   Days worked: %d", p.WorkingDays, p.DaysWorked),
		"",
		"EARNINGS",
		row("Basic", p.Basic),
		row("House rent allowance", p.HRA),
		row("Standard allowance", p.StandardAllowance),
		row("Performance bonus", p.PerformanceBonus),
		row("Leave travel allowance", p.LTA),
		row("Fixed allowance", p.FixedAllowance),
		row("Gross salary", p.GrossSalary),
		"",
		"DEDUCTIONS",
		row("Provident fund", p.PFDeduction),
		row("Professional tax", p.ProfessionalTax),
		row("Other deductions", p.OtherDeductions),
		row("Total deductions", p.TotalDeductions),
		"",
		row("NET SALARY", p.NetSalary),
		"In words: " + amountInWords(p.NetSalary),
		row("Employer PF contribution", p.PFEmployer),
		"",
		fmt.Sprintf("Status: %s", p.Status),
	}
	if p.PaymentDate != nil {
		lines = append(lines, "Paid on: "+p.PaymentDate.Format("2006-01-02"))
	}
	if p.Notes != nil && *p.Notes != "" {
		lines = append(lines, "Notes: "+*p.Notes)
	}
	return lines
}

// amountInWords spells the whole part and appends the cents as a fraction.
func amountInWords(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "minus "
		amount = amount.Neg()
	}

	rounded := amount.Round(2)
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	return fmt.Sprintf("%s%s and %02d/100", sign, num2words.Convert(int(whole.IntPart())), cents)
}

func buildSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
