package attendance

import (
	"context"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"go.uber.org/zap"
)

// Summary is what payroll needs from attendance for one employee and period.
type Summary struct {
	EmployeeID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	WorkingDays int
	DaysWorked  int
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Summarize(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (Summary, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Summarize(
	ctx context.Context,
	companyID string,
	employeeID int64,
	start, end time.Time,
) (Summary, error) {
	if employeeID <= 0 {
		return Summary{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if end.Before(start) {
		return Summary{}, attendanceerrors.ErrInvalidDateRange
	}

	worked, err := s.repo.CountDaysWorked(ctx, companyID, employeeID, start, end)
	if err != nil {
		s.logger.Error("count days worked failed",
			zap.String("company_id", companyID),
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return Summary{}, err
	}

	return Summary{
		EmployeeID:  employeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		WorkingDays: WorkingDays(start, end),
		DaysWorked:  int(worked),
	}, nil
}

func mapToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:  s.EmployeeID,
		PeriodStart: s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
		WorkingDays: s.WorkingDays,
		DaysWorked:  s.DaysWorked,
	}
}
