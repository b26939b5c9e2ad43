package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// EmployeeScope narrows a query to one employee. Zero leaves it unscoped.
func EmployeeScope(employeeID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if employeeID == 0 {
			return db
		}
		return db.Where("employee_id = ?", employeeID)
	}
}
