package payroll

import "time"

type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required"`
	Month      int    `json:"month" binding:"required"`
	// Nil berarti true: regenerasi mempertahankan allowances/deductions
	// yang sudah dimasukkan admin.
	PreserveAdjustments *bool `json:"preserve_adjustments"`
}

type UpdateAdjustmentsRequest struct {
	Allowances *float64 `json:"allowances" binding:"required,gte=0"`
	Deductions *float64 `json:"deductions" binding:"required,gte=0"`
}

type SetPayrollStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING GENERATED PAID"`
}

type PayrollResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	EmployeeNumber   string  `json:"employee_number,omitempty"`
	Department       string  `json:"department,omitempty"`
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	BasicSalary      float64 `json:"basic_salary"`
	TotalWorkingDays int     `json:"total_working_days"`
	PresentDays      int     `json:"present_days"`
	HalfDays         int     `json:"half_days"`
	AbsentDays       int     `json:"absent_days"`
	PaidLeaveDays    int     `json:"paid_leave_days"`
	UnpaidLeaveDays  int     `json:"unpaid_leave_days"`
	PayableDays      float64 `json:"payable_days"`
	PerDayRate       float64 `json:"per_day_rate"`
	GrossSalary      float64 `json:"gross_salary"`
	Allowances       float64 `json:"allowances"`
	Deductions       float64 `json:"deductions"`
	NetSalary        float64 `json:"net_salary"`
	Status           string  `json:"status"`
}

type AdjustmentsResponse struct {
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	NetSalary  float64 `json:"net_salary"`
}

// AttendanceStats adalah agregat kehadiran bulanan yang dibaca langsung dari
// tabel attendances; payroll dan attendance hanya bertemu lewat baris
// tersimpan, bukan pemanggilan antar service.
type AttendanceStats struct {
	PresentDays int `json:"present_days"`
	HalfDays    int `json:"half_days"`
	AbsentDays  int `json:"absent_days"`
}

type LeaveSpan struct {
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
}
