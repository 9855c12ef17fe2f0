package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:char(36);not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone          string    `gorm:"type:varchar(30)"`
	Department     string    `gorm:"type:varchar(80)"`
	JobTitle       string    `gorm:"type:varchar(80)"`

	// Input payroll: gaji pokok bulanan pada profil.
	BaseSalary  float64   `gorm:"type:decimal(12,2);not null;default:0"`
	JoiningDate time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
