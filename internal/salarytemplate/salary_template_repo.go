package salarytemplate

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_template_repo.go -destination=mock/salary_template_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *SalaryTemplate) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryTemplate, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryTemplate, error)
	Update(ctx context.Context, t *SalaryTemplate) error
	Delete(ctx context.Context, companyID, id string) error
	IsReferencedByActiveStructure(ctx context.Context, companyID, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *SalaryTemplate) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryTemplate, error) {
	var templates []SalaryTemplate
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&templates).Error
	return templates, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryTemplate, error) {
	var t SalaryTemplate
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *SalaryTemplate) error {
	return r.conn(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SalaryTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) IsReferencedByActiveStructure(ctx context.Context, companyID, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("salary_structures").
		Scopes(tenant.Scope(companyID)).
		Where("template_id = ?", id).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}
