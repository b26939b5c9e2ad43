package attendance

import (
	"context"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	CountDaysWorked(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountDaysWorked(
	ctx context.Context,
	companyID string,
	employeeID int64,
	start, end time.Time,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID), tenant.EmployeeScope(employeeID)).
		Where("attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("status IN ?", WorkedStatuses).
		Count(&count).Error
	return count, err
}
