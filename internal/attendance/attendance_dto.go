package attendance

type RecordBreakRequest struct {
	BreakStart string `json:"break_start" binding:"required"`
	BreakEnd   string `json:"break_end" binding:"required"`
}

type AttendanceResponse struct {
	ID                   string   `json:"id"`
	CompanyID            string   `json:"company_id"`
	EmployeeID           string   `json:"employee_id"`
	EmployeeName         string   `json:"employee_name,omitempty"`
	EmployeeNumber       string   `json:"employee_number,omitempty"`
	Department           string   `json:"department,omitempty"`
	JobTitle             string   `json:"job_title,omitempty"`
	AttendanceDate       string   `json:"attendance_date"`
	CheckIn              string   `json:"check_in"`
	CheckOut             *string  `json:"check_out,omitempty"`
	BreakStart           *string  `json:"break_start,omitempty"`
	BreakEnd             *string  `json:"break_end,omitempty"`
	BreakDurationMinutes int      `json:"break_duration_minutes"`
	WorkingHours         float64  `json:"working_hours"`
	Status               string   `json:"status"`
}

type MonthlyStats struct {
	TotalDays         int     `json:"total_days"`
	PresentDays       int     `json:"present_days"`
	HalfDays          int     `json:"half_days"`
	AbsentDays        int     `json:"absent_days"`
	LeaveDays         int     `json:"leave_days"`
	TotalWorkingHours float64 `json:"total_working_hours"`
}

type MonthlyAttendanceResponse struct {
	Records []AttendanceResponse `json:"records"`
	Stats   MonthlyStats         `json:"stats"`
}
