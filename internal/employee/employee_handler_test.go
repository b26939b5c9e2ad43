package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
}

func (f *fakeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.getOptionsFn(ctx, companyID)
}

func TestHandler_GetOptions_FiltersByQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getOptionsFn: func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
			assert.Equal(t, "company-1", companyID)
			return []employee.EmployeeOptionResponse{
				{ID: 1, EmployeeCode: "EMP-1", FullName: "Asha Rao"},
				{ID: 2, EmployeeCode: "EMP-2", FullName: "Vikram Shah"},
			}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "company-1")
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/options?q=shah", nil)

	h.GetOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Ok   bool                              `json:"ok"`
		Data []employee.EmployeeOptionResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(2), body.Data[0].ID)
}
