package payroll

import (
	"context"
	"database/sql"

	"dayflow/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	Update(ctx context.Context, p *Payroll) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error)
	FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]Payroll, error)
	FindAllByPeriod(ctx context.Context, companyID string, year, month int) ([]Payroll, error)
	EmployeeBasicSalary(ctx context.Context, companyID, employeeID string) (float64, error)
	MonthlyAttendanceStats(ctx context.Context, companyID, employeeID string, year, month int) (AttendanceStats, error)
	ApprovedLeaveSpans(ctx context.Context, companyID, employeeID string, year, month int) ([]LeaveSpan, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Session gorm diikat ke *sql.Tx supaya upsert payroll dan insert outbox
	// commit atau rollback bersama-sama. Context memaksa clone Statement,
	// jadi repo asal tetap memakai pool.
	db := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ? AND month = ?", year, month).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, companyID string, year, month int) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ? AND month = ?", year, month).
		Joins("JOIN employees ON employees.id = payrolls.employee_id").
		Preload("Employee").
		Order("employees.full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeBasicSalary(ctx context.Context, companyID, employeeID string) (float64, error) {
	var basicSalary float64
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("base_salary").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Take(&basicSalary).Error
	return basicSalary, err
}

func (r *repository) MonthlyAttendanceStats(ctx context.Context, companyID, employeeID string, year, month int) (AttendanceStats, error) {
	var stats AttendanceStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
	COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present_days,
	COALESCE(SUM(CASE WHEN status = 'HALF_DAY' THEN 1 ELSE 0 END), 0) AS half_days,
	COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent_days
FROM attendances
WHERE company_id = ?
	AND employee_id = ?
	AND YEAR(attendance_date) = ?
	AND MONTH(attendance_date) = ?
	AND deleted_at IS NULL
`, companyID, employeeID, year, month).
		Scan(&stats).Error
	return stats, err
}

func (r *repository) ApprovedLeaveSpans(ctx context.Context, companyID, employeeID string, year, month int) ([]LeaveSpan, error) {
	var spans []LeaveSpan
	err := r.db.WithContext(ctx).Raw(`
SELECT leave_type, start_date, end_date
FROM leaves
WHERE company_id = ?
	AND employee_id = ?
	AND status = 'APPROVED'
	AND leave_type IN ('PAID', 'UNPAID')
	AND YEAR(start_date) = ?
	AND MONTH(start_date) = ?
	AND deleted_at IS NULL
`, companyID, employeeID, year, month).
		Scan(&spans).Error
	return spans, err
}
