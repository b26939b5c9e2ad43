package payslip

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateIfAbsent(ctx context.Context, p *Payslip) (bool, error)
	ExistsForPeriod(ctx context.Context, employeeID int64, start, end time.Time) (bool, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]Payslip, int64, error)
	MarkPaid(ctx context.Context, companyID, id string, paymentDate time.Time, notes *string) (bool, error)
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

// CreateIfAbsent inserts p unless a payslip for the same employee and period
// exists. It reports false when the row was already there.
func (r *repository) CreateIfAbsent(ctx context.Context, p *Payslip) (bool, error) {
	res := r.conn(ctx).
		Omit("Employee").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "pay_period_start"},
				{Name: "pay_period_end"},
			},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Payslip{}).
		Scopes(tenant.EmployeeScope(employeeID)).
		Where("pay_period_start = ? AND pay_period_end = ?", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var p Payslip
	err := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

// List applies the filters and, when PageSize is positive, one page of
// results. The total ignores paging.
func (r *repository) List(ctx context.Context, companyID string, filter ListFilter) ([]Payslip, int64, error) {
	db := r.conn(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID), tenant.EmployeeScope(filter.EmployeeID))

	if filter.Year > 0 {
		db = db.Where("EXTRACT(YEAR FROM pay_period_start) = ?", filter.Year)
	}
	if filter.Month > 0 {
		db = db.Where("EXTRACT(MONTH FROM pay_period_start) = ?", filter.Month)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Preload("Employee").Order("pay_period_start DESC, employee_id ASC")
	if filter.PageSize > 0 {
		q = q.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var rows []Payslip
	err := q.Find(&rows).Error
	return rows, total, err
}

// MarkPaid flips a processed payslip to paid in a single conditional update.
// Only the status, payment date and notes columns are written. It reports
// false when no processed payslip with that id exists for the company.
func (r *repository) MarkPaid(
	ctx context.Context,
	companyID, id string,
	paymentDate time.Time,
	notes *string,
) (bool, error) {
	values := map[string]any{
		"status":       StatusPaid,
		"payment_date": paymentDate,
	}
	if notes != nil {
		values["notes"] = *notes
	}

	res := r.conn(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, StatusProcessed).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
