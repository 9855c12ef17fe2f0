package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payroll struct {
	ID         uuid.UUID    `gorm:"type:char(36);primaryKey"`
	CompanyID  uuid.UUID    `gorm:"type:char(36);not null;index:idx_payroll_company_status"`
	EmployeeID uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_payroll_employee_period"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	// Periode penggajian; satu baris per (employee, year, month).
	Year  int `gorm:"type:int;not null;uniqueIndex:idx_payroll_employee_period"`
	Month int `gorm:"type:int;not null;uniqueIndex:idx_payroll_employee_period"`

	BasicSalary      float64 `gorm:"type:decimal(12,2);not null;default:0"`
	TotalWorkingDays int     `gorm:"type:int;not null;default:22"`
	PresentDays      int     `gorm:"type:int;not null;default:0"`
	HalfDays         int     `gorm:"type:int;not null;default:0"`
	AbsentDays       int     `gorm:"type:int;not null;default:0"`
	PaidLeaveDays    int     `gorm:"type:int;not null;default:0"`
	UnpaidLeaveDays  int     `gorm:"type:int;not null;default:0"`
	PayableDays      float64 `gorm:"type:decimal(6,2);not null;default:0"`
	PerDayRate       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	GrossSalary      float64 `gorm:"type:decimal(12,2);not null;default:0"`
	Allowances       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	Deductions       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	NetSalary        float64 `gorm:"type:decimal(12,2);not null;default:0"`

	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_payroll_company_status"`
	GeneratedBy uuid.UUID `gorm:"type:char(36);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	FullName       string    `gorm:"column:full_name"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	Department     string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

const (
	StatusPending   = "PENDING"
	StatusGenerated = "GENERATED"
	StatusPaid      = "PAID"
)
