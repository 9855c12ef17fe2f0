package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:char(36);not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"type:char(36);not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'PAID'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	AdminComment *string    `gorm:"type:text"`
	DecidedBy    *uuid.UUID `gorm:"type:char(36)"`
	DecidedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

const (
	TypePaid   = "PAID"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"
	TypeCasual = "CASUAL"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)
