package employee

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindExistingIDs(ctx context.Context, companyID string, ids []int64) ([]int64, error)
	FindIDsWithActiveStructure(ctx context.Context, companyID string) ([]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_code", "full_name", "department").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindExistingIDs(ctx context.Context, companyID string, ids []int64) ([]int64, error) {
	found := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Order("id ASC").
		Pluck("id", &found).Error
	return found, err
}

func (r *repository) FindIDsWithActiveStructure(ctx context.Context, companyID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("EXISTS (SELECT 1 FROM salary_structures ss WHERE ss.employee_id = employees.id AND ss.is_active = true)").
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
