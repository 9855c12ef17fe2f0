package attendance

import (
	"context"
	"database/sql"
	"time"

	"dayflow/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error)
	MonthlyStats(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyStats, error)
	FindAllByDate(ctx context.Context, companyID string, date time.Time) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("YEAR(attendance_date) = ? AND MONTH(attendance_date) = ?", year, month).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) MonthlyStats(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyStats, error) {
	var stats MonthlyStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
	COUNT(*) AS total_days,
	COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS present_days,
	COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS half_days,
	COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS absent_days,
	COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS leave_days,
	COALESCE(ROUND(SUM(working_hours), 2), 0) AS total_working_hours
FROM attendances
WHERE company_id = ?
	AND employee_id = ?
	AND YEAR(attendance_date) = ?
	AND MONTH(attendance_date) = ?
	AND deleted_at IS NULL
`, StatusPresent, StatusHalfDay, StatusAbsent, StatusOnLeave,
		companyID, employeeID, year, month).
		Scan(&stats).Error
	return stats, err
}

func (r *repository) FindAllByDate(ctx context.Context, companyID string, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Preload("Employee").
		Order("employees.full_name ASC").
		Find(&rows).Error
	return rows, err
}
