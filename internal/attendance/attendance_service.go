package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	RecordBreak(ctx context.Context, companyID, employeeID string, req RecordBreakRequest) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, companyID, employeeID string) (*AttendanceResponse, error)
	GetHistory(ctx context.Context, companyID, employeeID string) ([]AttendanceResponse, error)
	GetMonthly(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyAttendanceResponse, error)
	GetAllToday(ctx context.Context, companyID string) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, time.Now, logger...)
}

// NewServiceWithClock menerima sumber waktu eksplisit supaya test bisa
// menyematkan tanggal/jam tetap.
func NewServiceWithClock(db *sql.DB, repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: now, logger: l}
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		CheckIn:        now.Format(timeOfDayLayout),
		Status:         StatusPresent,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// Index unik (employee_id, attendance_date) menutup balapan
		// dua check-in simultan; pemenang kedua mendapat duplicate key.
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInRecord
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	checkOut := now.Format(timeOfDayLayout)
	workingHours, err := ComputeWorkingHours(row.CheckIn, checkOut, row.BreakDurationMinutes)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row.CheckOut = &checkOut
	row.WorkingHours = workingHours
	row.Status = DeriveStatus(workingHours)

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.Float64("working_hours", workingHours),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) RecordBreak(ctx context.Context, companyID, employeeID string, req RecordBreakRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record break begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := s.now().UTC().Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInRecord
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	duration, err := BreakDurationMinutes(req.BreakStart, req.BreakEnd)
	if err != nil {
		return AttendanceResponse{}, err
	}

	// Satu jendela istirahat per hari; pemanggilan ulang menimpa jendela lama.
	breakStart := req.BreakStart
	breakEnd := req.BreakEnd
	row.BreakStart = &breakStart
	row.BreakEnd = &breakEnd
	row.BreakDurationMinutes = duration

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetTodayStatus(ctx context.Context, companyID, employeeID string) (*AttendanceResponse, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) GetHistory(ctx context.Context, companyID, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetMonthly(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyAttendanceResponse, error) {
	if month < 1 || month > 12 {
		return MonthlyAttendanceResponse{}, attendanceerrors.ErrInvalidMonth
	}

	records, err := s.repo.FindByEmployeeAndMonth(ctx, companyID, employeeID, year, month)
	if err != nil {
		return MonthlyAttendanceResponse{}, err
	}

	stats, err := s.repo.MonthlyStats(ctx, companyID, employeeID, year, month)
	if err != nil {
		return MonthlyAttendanceResponse{}, err
	}

	return MonthlyAttendanceResponse{
		Records: mapToListResponse(records),
		Stats:   stats,
	}, nil
}

func (s *service) GetAllToday(ctx context.Context, companyID string) ([]AttendanceResponse, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	rows, err := s.repo.FindAllByDate(ctx, companyID, today)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                   a.ID.String(),
		CompanyID:            a.CompanyID.String(),
		EmployeeID:           a.EmployeeID.String(),
		AttendanceDate:       a.AttendanceDate.Format("2006-01-02"),
		CheckIn:              a.CheckIn,
		CheckOut:             a.CheckOut,
		BreakStart:           a.BreakStart,
		BreakEnd:             a.BreakEnd,
		BreakDurationMinutes: a.BreakDurationMinutes,
		WorkingHours:         a.WorkingHours,
		Status:               a.Status,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
		resp.EmployeeNumber = a.Employee.EmployeeNumber
		resp.Department = a.Employee.Department
		resp.JobTitle = a.Employee.JobTitle
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
