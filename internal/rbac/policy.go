package rbac

import "go-payroll/internal/domain"

// DefaultPolicies is the payroll permission matrix. Admin inherits every HR
// permission through DefaultGroupings.
var DefaultPolicies = [][]string{
	{domain.RoleHR, "salary_template", "create"},
	{domain.RoleHR, "salary_template", "read"},
	{domain.RoleHR, "salary_template", "update"},
	{domain.RoleHR, "salary_template", "delete"},
	{domain.RoleHR, "salary_structure", "create"},
	{domain.RoleHR, "salary_structure", "read"},
	{domain.RoleHR, "salary_structure", "update"},
	{domain.RoleHR, "salary_structure", "read_self"},
	{domain.RoleHR, "payslip", "generate"},
	{domain.RoleHR, "payslip", "read"},
	{domain.RoleHR, "payslip", "pay"},
	{domain.RoleHR, "payslip", "export"},
	{domain.RoleHR, "attendance", "read"},
	{domain.RoleHR, "employee", "read"},

	{domain.RoleEmployee, "salary_template", "read"},
	{domain.RoleEmployee, "salary_structure", "read_self"},
	{domain.RoleEmployee, "payslip", "read"},
	{domain.RoleEmployee, "attendance", "read"},
}

var DefaultGroupings = [][]string{
	{domain.RoleAdmin, domain.RoleHR},
}
