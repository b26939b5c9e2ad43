package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	summarizeFn func(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (attendance.Summary, error)
}

func (f *fakeService) Summarize(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (attendance.Summary, error) {
	return f.summarizeFn(ctx, companyID, employeeID, start, end)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newContext(w *httptest.ResponseRecorder, url, role, employeeID string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "company-1")
	c.Set("role", role)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		summarizeFn: func(ctx context.Context, companyID string, employeeID int64, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{
				EmployeeID:  employeeID,
				PeriodStart: start,
				PeriodEnd:   end,
				WorkingDays: 23,
				DaysWorked:  21,
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	t.Run("employee defaults to self", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newContext(w, "/attendances/summary?start=2024-05-01&end=2024-05-31", domain.RoleEmployee, "7")
		h.Summary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var data attendance.SummaryResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(7), data.EmployeeID)
		assert.Equal(t, 23, data.WorkingDays)
		assert.Equal(t, 21, data.DaysWorked)
		assert.Equal(t, "2024-05-01", data.PeriodStart)
	})

	t.Run("employee cannot read another employee", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newContext(w, "/attendances/summary?employee_id=8&start=2024-05-01&end=2024-05-31", domain.RoleEmployee, "7")
		h.Summary(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hr must name an employee", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newContext(w, "/attendances/summary?start=2024-05-01&end=2024-05-31", domain.RoleHR, "")
		h.Summary(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newContext(w, "/attendances/summary?employee_id=8&start=2024-13-01&end=2024-05-31", domain.RoleAdmin, "")
		h.Summary(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}
