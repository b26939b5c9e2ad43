package salarytemplate

import (
	"errors"

	salarytemplateerrors "go-payroll/internal/salarytemplate/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarytemplateerrors.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_salary_templates_company_name" {
				return salarytemplateerrors.ErrTemplateNameExists
			}
		case "23503":
			return salarytemplateerrors.ErrTemplateInUse
		}
	}

	return err
}
