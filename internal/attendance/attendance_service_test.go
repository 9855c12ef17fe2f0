package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                 func(tx *sql.Tx) Repository
	createFn                 func(ctx context.Context, a *Attendance) error
	updateFn                 func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn  func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findAllByEmployeeFn      func(ctx context.Context, companyID, employeeID string) ([]Attendance, error)
	findByEmployeeAndMonthFn func(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error)
	monthlyStatsFn           func(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyStats, error)
	findAllByDateFn          func(ctx context.Context, companyID string, date time.Time) ([]Attendance, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error) {
	return f.findByEmployeeAndMonthFn(ctx, companyID, employeeID, year, month)
}
func (f *fakeRepo) MonthlyStats(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyStats, error) {
	return f.monthlyStatsFn(ctx, companyID, employeeID, year, month)
}
func (f *fakeRepo) FindAllByDate(ctx context.Context, companyID string, date time.Time) ([]Attendance, error) {
	return f.findAllByDateFn(ctx, companyID, date)
}

func fixedClock(value string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}

func TestService_CheckInAndCheckOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	clock := fixedClock("2026-03-02T09:00:00Z")
	svc := NewServiceWithClock(db, repo, clock, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, companyID, employeeID)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-02", inResp.AttendanceDate)
	assert.Equal(t, "09:00:00", inResp.CheckIn)
	assert.Equal(t, StatusPresent, inResp.Status)

	clockOut := fixedClock("2026-03-02T17:30:00Z")
	svc = NewServiceWithClock(db, repo, clockOut, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.CheckOut(ctx, companyID, employeeID)
	assert.NoError(t, err)
	assert.NotNil(t, outResp.CheckOut)
	assert.Equal(t, "17:30:00", *outResp.CheckOut)
	assert.Equal(t, 8.5, outResp.WorkingHours)
	assert.Equal(t, StatusPresent, outResp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New()}, nil
	}

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T09:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_Preconditions(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T17:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(ctx, uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInRecord)

	checkOut := "17:00:00"
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), CheckIn: "09:00:00", CheckOut: &checkOut}, nil
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_HalfDayStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	row := Attendance{ID: uuid.New(), CheckIn: "09:00:00", BreakDurationMinutes: 60}
	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		copied := row
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, a *Attendance) error { return nil }

	// 09:00 sampai 15:00 dikurangi 60 menit istirahat = 5 jam bersih.
	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T15:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 5.0, resp.WorkingHours)
	assert.Equal(t, StatusHalfDay, resp.Status)
}

func TestService_RecordBreak(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Attendance
	row := Attendance{ID: uuid.New(), CheckIn: "09:00:00"}
	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		copied := row
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T13:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.RecordBreak(ctx, uuid.New().String(), uuid.New().String(), RecordBreakRequest{
		BreakStart: "12:00:00",
		BreakEnd:   "12:45:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, 45, resp.BreakDurationMinutes)
	assert.Equal(t, 45, saved.BreakDurationMinutes)

	// Jendela kedua menimpa jendela pertama, bukan menambah.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.RecordBreak(ctx, uuid.New().String(), uuid.New().String(), RecordBreakRequest{
		BreakStart: "15:00:00",
		BreakEnd:   "15:30:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, 30, resp.BreakDurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RecordBreak_AfterCheckOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	checkOut := "17:00:00"
	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), CheckIn: "09:00:00", CheckOut: &checkOut}, nil
	}

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T18:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.RecordBreak(context.Background(), uuid.New().String(), uuid.New().String(), RecordBreakRequest{
		BreakStart: "12:00:00",
		BreakEnd:   "12:30:00",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetTodayStatus_NotCheckedIn(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T08:00:00Z"), nil)
	resp, err := svc.GetTodayStatus(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestService_GetMonthly(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := &fakeRepo{}
	repo.findByEmployeeAndMonthFn = func(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error) {
		return []Attendance{{ID: uuid.New(), CheckIn: "09:00:00", Status: StatusPresent}}, nil
	}
	repo.monthlyStatsFn = func(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyStats, error) {
		return MonthlyStats{TotalDays: 1, PresentDays: 1, TotalWorkingHours: 8}, nil
	}

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-31T09:00:00Z"), nil)

	resp, err := svc.GetMonthly(ctx, uuid.New().String(), uuid.New().String(), 2026, 3)
	assert.NoError(t, err)
	assert.Len(t, resp.Records, 1)
	assert.Equal(t, 1, resp.Stats.PresentDays)

	_, err = svc.GetMonthly(ctx, uuid.New().String(), uuid.New().String(), 2026, 13)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)
}

func TestService_CheckIn_DuplicateKeyFromRace(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		return errors.New("Error 1062 (23000): Duplicate entry for key 'idx_attendance_employee_date'")
	}

	svc := NewServiceWithClock(db, repo, fixedClock("2026-03-02T09:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}
