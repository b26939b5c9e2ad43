package app

import (
	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/salarytemplate"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&salarytemplate.SalaryTemplate{},
		&salarystructure.SalaryStructure{},
		&payslip.Payslip{},
	); err != nil {
		return err
	}
	return db.Exec(kafka.OutboxTableDDL).Error
}
