package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusOnLeave = "ON_LEAVE"
)

type Attendance struct {
	ID             uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:char(36);not null;index"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:char(36);not null;index:idx_attendance_employee_date,unique"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;index:idx_attendance_employee_date,unique"`

	// Waktu disimpan sebagai TIME (HH:MM:SS); aritmetika dilakukan atas
	// durasi sejak tengah malam, bukan timestamp penuh.
	CheckIn              string  `gorm:"column:check_in;type:time;not null"`
	CheckOut             *string `gorm:"column:check_out;type:time"`
	BreakStart           *string `gorm:"column:break_start;type:time"`
	BreakEnd             *string `gorm:"column:break_end;type:time"`
	BreakDurationMinutes int     `gorm:"column:break_duration_minutes;not null;default:0"`

	WorkingHours float64 `gorm:"column:working_hours;type:decimal(5,2);not null;default:0"`
	Status       string  `gorm:"column:status;type:varchar(20);not null;default:'PRESENT'"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee  *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	FullName       string    `gorm:"column:full_name"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	Department     string    `gorm:"column:department"`
	JobTitle       string    `gorm:"column:job_title"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
