package payslip

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Payslips"

var registerHeaders = []string{
	"Employee ID", "Employee", "Period Start", "Period End", "Template",
	"Working Days", "Days Worked", "Monthly Wage", "Basic", "HRA",
	"Standard Allowance", "Performance Bonus", "LTA", "Fixed Allowance", "Gross",
	"PF", "Professional Tax", "Other Deductions", "Total Deductions", "Net",
	"Employer PF", "Status", "Payment Date",
}

// renderRegister writes one row per payslip. Money cells are numbers so the
// sheet can be summed.
func renderRegister(rows []Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, header := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(registerSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, p := range rows {
		row := i + 2
		paymentDate := ""
		if p.PaymentDate != nil {
			paymentDate = p.PaymentDate.Format("2006-01-02")
		}

		values := []any{
			p.EmployeeID,
			p.EmployeeName(),
			p.PayPeriodStart.Format("2006-01-02"),
			p.PayPeriodEnd.Format("2006-01-02"),
			p.TemplateName,
			p.WorkingDays,
			p.DaysWorked,
			p.MonthlyWage.InexactFloat64(),
			p.Basic.InexactFloat64(),
			p.HRA.InexactFloat64(),
			p.StandardAllowance.InexactFloat64(),
			p.PerformanceBonus.InexactFloat64(),
			p.LTA.InexactFloat64(),
			p.FixedAllowance.InexactFloat64(),
			p.GrossSalary.InexactFloat64(),
			p.PFDeduction.InexactFloat64(),
			p.ProfessionalTax.InexactFloat64(),
			p.OtherDeductions.InexactFloat64(),
			p.TotalDeductions.InexactFloat64(),
			p.NetSalary.InexactFloat64(),
			p.PFEmployer.InexactFloat64(),
			p.Status,
			paymentDate,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(registerSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
