package rbac_test

import (
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{domain.RoleAdmin, "payslip", "generate", true},
		{domain.RoleAdmin, "salary_template", "delete", true},
		{domain.RoleHR, "payslip", "pay", true},
		{domain.RoleHR, "payslip", "export", true},
		{domain.RoleEmployee, "payslip", "read", true},
		{domain.RoleEmployee, "salary_structure", "read_self", true},
		{domain.RoleEmployee, "payslip", "generate", false},
		{domain.RoleEmployee, "payslip", "pay", false},
		{domain.RoleEmployee, "salary_template", "update", false},
		{domain.RoleEmployee, "salary_structure", "read", false},
		{"guest", "payslip", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.role+":"+tc.resource+":"+tc.action, func(t *testing.T) {
			got, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
