package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	countDaysWorkedFn func(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (int64, error)
}

func (f *fakeRepo) CountDaysWorked(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (int64, error) {
	return f.countDaysWorkedFn(ctx, companyID, employeeID, start, end)
}

func TestService_Summarize(t *testing.T) {
	ctx := context.Background()
	start, end := date("2024-05-01"), date("2024-05-31")

	t.Run("combines working days with worked count", func(t *testing.T) {
		repo := &fakeRepo{
			countDaysWorkedFn: func(ctx context.Context, companyID string, employeeID int64, s, e time.Time) (int64, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, int64(42), employeeID)
				assert.True(t, s.Equal(start))
				assert.True(t, e.Equal(end))
				return 20, nil
			},
		}
		svc := NewService(repo)

		got, err := svc.Summarize(ctx, "company-1", 42, start, end)
		assert.NoError(t, err)
		assert.Equal(t, 23, got.WorkingDays)
		assert.Equal(t, 20, got.DaysWorked)
	})

	t.Run("one working week with a day on leave", func(t *testing.T) {
		weekStart, weekEnd := date("2024-05-06"), date("2024-05-10")
		repo := &fakeRepo{
			countDaysWorkedFn: func(ctx context.Context, companyID string, employeeID int64, s, e time.Time) (int64, error) {
				assert.True(t, s.Equal(weekStart))
				assert.True(t, e.Equal(weekEnd))
				return 4, nil
			},
		}

		got, err := NewService(repo).Summarize(ctx, "company-1", 42, weekStart, weekEnd)
		assert.NoError(t, err)
		assert.Equal(t, 5, got.WorkingDays)
		assert.Equal(t, 4, got.DaysWorked)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		_, err := svc.Summarize(ctx, "company-1", 42, end, start)
		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidDateRange))
	})

	t.Run("rejects non-positive employee", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		_, err := svc.Summarize(ctx, "company-1", 0, start, end)
		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidEmployeeID))
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repo := &fakeRepo{
			countDaysWorkedFn: func(ctx context.Context, companyID string, employeeID int64, s, e time.Time) (int64, error) {
				return 0, errors.New("db down")
			},
		}
		_, err := NewService(repo).Summarize(ctx, "company-1", 42, start, end)
		assert.EqualError(t, err, "db down")
	})
}
