package salarytemplateerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary template not found",
		http.StatusNotFound,
	)
	ErrTemplateNameExists = apperror.New(
		apperror.CodeConflict,
		"A salary template with this name already exists",
		http.StatusConflict,
	)
	ErrTemplateInUse = apperror.New(
		apperror.CodeConflict,
		"Salary template is bound to an active salary structure",
		http.StatusConflict,
	)
	ErrNegativeValue = apperror.New(
		apperror.CodeInvalidInput,
		"Template percentages and amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidTemplateID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary template ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
