package salarystructure

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *SalaryStructure) error
	Update(ctx context.Context, s *SalaryStructure) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryStructure, error)
	FindActiveByEmployee(ctx context.Context, companyID string, employeeID int64) (*SalaryStructure, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]SalaryStructure, error)
	HasActiveForEmployee(ctx context.Context, companyID string, employeeID int64) (bool, error)
	EmployeeExists(ctx context.Context, companyID string, employeeID int64) (bool, error)
	TemplateExists(ctx context.Context, companyID, templateID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.BindTx(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Omit("Template", "Employee").Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Omit("Template", "Employee").Save(s).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).
		Preload("Template").
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID string, employeeID int64) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).
		Preload("Template").
		Scopes(tenant.Scope(companyID), tenant.EmployeeScope(employeeID)).
		Where("is_active = ?", true).
		First(&s).Error
	return &s, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]SalaryStructure, error) {
	db := r.conn(ctx).
		Preload("Template").
		Preload("Employee").
		Scopes(tenant.Scope(companyID), tenant.EmployeeScope(filter.EmployeeID))
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}

	var rows []SalaryStructure
	err := db.Order("employee_id ASC, effective_from DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) HasActiveForEmployee(ctx context.Context, companyID string, employeeID int64) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&SalaryStructure{}).
		Scopes(tenant.Scope(companyID), tenant.EmployeeScope(employeeID)).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, companyID string, employeeID int64) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TemplateExists(ctx context.Context, companyID, templateID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("salary_templates").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", templateID).
		Count(&count).Error
	return count > 0, err
}
