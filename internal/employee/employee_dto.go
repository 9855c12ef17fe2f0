package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone"`
	Department     string  `json:"department"`
	JobTitle       string  `json:"job_title"`
	BaseSalary     float64 `json:"base_salary" binding:"gte=0"`
	JoiningDate    string  `json:"joining_date" binding:"required"`
	EmployeeNumber string  `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Phone       string   `json:"phone"`
	Department  string   `json:"department"`
	JobTitle    string   `json:"job_title"`
	BaseSalary  *float64 `json:"base_salary" binding:"omitempty,gte=0"`
	JoiningDate string   `json:"joining_date" binding:"required"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Department     string  `json:"department,omitempty"`
	JobTitle       string  `json:"job_title,omitempty"`
	BaseSalary     float64 `json:"base_salary"`
	JoiningDate    string  `json:"joining_date"`
}
