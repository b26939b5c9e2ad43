package salarystructureerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)
	ErrActiveStructureExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active salary structure",
		http.StatusConflict,
	)
	ErrStructureInactive = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure is no longer active",
		http.StatusBadRequest,
	)
	ErrTemplateRequired = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure has no template bound",
		http.StatusUnprocessableEntity,
	)
	ErrTemplateNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Salary template not found for this company",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this account",
		http.StatusNotFound,
	)
	ErrInvalidStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary structure ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidTemplateID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid template ID",
		http.StatusBadRequest,
	)
	ErrNegativeValue = apperror.New(
		apperror.CodeInvalidInput,
		"Wage, bonus, allowance and deductions cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working_days_per_week must be between 1 and 7",
		http.StatusBadRequest,
	)
	ErrInvalidPayFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"pay_frequency must be one of monthly, bi_weekly, weekly",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
