package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the read-only view payroll needs of the HR directory.
type Employee struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeCode string    `gorm:"type:varchar(30)"`
	FullName     string    `gorm:"type:varchar(150);not null"`
	Email        string    `gorm:"type:varchar(150)"`
	Department   string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
