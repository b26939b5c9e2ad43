package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	h := rbac.NewHandler(svc)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"allowed", `{"role":"hr","resource":"payslip","action":"pay"}`, http.StatusOK, `"allowed":true`},
		{"denied", `{"role":"employee","resource":"payslip","action":" pay "}`, http.StatusOK, `"allowed":false`},
		{"missing action", `{"role":"hr","resource":"payslip"}`, http.StatusBadRequest, `"code":"INVALID_INPUT"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			h.Enforce(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
