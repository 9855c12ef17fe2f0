package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka"
	payrollerrors "dayflow/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                  func(tx *sql.Tx) Repository
	createFn                  func(ctx context.Context, p *Payroll) error
	updateFn                  func(ctx context.Context, p *Payroll) error
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error)
	findByIDAndCompanyFn      func(ctx context.Context, companyID, id string) (*Payroll, error)
	findHistoryByEmployeeFn   func(ctx context.Context, companyID, employeeID string) ([]Payroll, error)
	findAllByPeriodFn         func(ctx context.Context, companyID string, year, month int) ([]Payroll, error)
	employeeBasicSalaryFn     func(ctx context.Context, companyID, employeeID string) (float64, error)
	monthlyAttendanceStatsFn  func(ctx context.Context, companyID, employeeID string, year, month int) (AttendanceStats, error)
	approvedLeaveSpansFn      func(ctx context.Context, companyID, employeeID string, year, month int) ([]LeaveSpan, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error { return f.createFn(ctx, p) }
func (f *fakeRepo) Update(ctx context.Context, p *Payroll) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error) {
	return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, year, month)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]Payroll, error) {
	return f.findHistoryByEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) FindAllByPeriod(ctx context.Context, companyID string, year, month int) ([]Payroll, error) {
	return f.findAllByPeriodFn(ctx, companyID, year, month)
}
func (f *fakeRepo) EmployeeBasicSalary(ctx context.Context, companyID, employeeID string) (float64, error) {
	return f.employeeBasicSalaryFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) MonthlyAttendanceStats(ctx context.Context, companyID, employeeID string, year, month int) (AttendanceStats, error) {
	return f.monthlyAttendanceStatsFn(ctx, companyID, employeeID, year, month)
}
func (f *fakeRepo) ApprovedLeaveSpans(ctx context.Context, companyID, employeeID string, year, month int) ([]LeaveSpan, error) {
	return f.approvedLeaveSpansFn(ctx, companyID, employeeID, year, month)
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return d
}

func fixedClock(value string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}

func TestService_Generate_FirstTime(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	var saved Payroll
	repo := &fakeRepo{}
	repo.employeeBasicSalaryFn = func(ctx context.Context, cid, eid string) (float64, error) {
		return 50000, nil
	}
	repo.monthlyAttendanceStatsFn = func(ctx context.Context, cid, eid string, year, month int) (AttendanceStats, error) {
		return AttendanceStats{PresentDays: 18, HalfDays: 2, AbsentDays: 1}, nil
	}
	repo.approvedLeaveSpansFn = func(ctx context.Context, cid, eid string, year, month int) ([]LeaveSpan, error) {
		return []LeaveSpan{
			{LeaveType: "PAID", StartDate: date(t, "2026-03-10"), EndDate: date(t, "2026-03-11")},
			{LeaveType: "UNPAID", StartDate: date(t, "2026-03-20"), EndDate: date(t, "2026-03-20")},
		}, nil
	}
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid string, year, month int) (*Payroll, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, outbox, fixedClock("2026-04-01T09:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), companyID, uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: employeeID,
		Year:       2026,
		Month:      3,
	})
	assert.NoError(t, err)

	// payable = 18 + 0.5*2 + 2 - 1 = 20; gross = round2(50000/22 * 20)
	assert.Equal(t, 20.0, resp.PayableDays)
	assert.Equal(t, 2272.73, resp.PerDayRate)
	assert.Equal(t, 45454.55, resp.GrossSalary)
	assert.Equal(t, 45454.55, resp.NetSalary)
	assert.Equal(t, StatusGenerated, resp.Status)
	assert.Equal(t, 2, resp.PaidLeaveDays)
	assert.Equal(t, 1, resp.UnpaidLeaveDays)
	assert.Equal(t, StatusGenerated, saved.Status)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, events.PayrollGeneratedTopic, outbox.events[0].Topic)
	var event events.PayrollGeneratedEvent
	assert.NoError(t, json.Unmarshal(outbox.events[0].Payload, &event))
	assert.Equal(t, "payroll_generated", event.EventType)
	assert.Equal(t, employeeID, event.EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_SalaryNotConfigured(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.employeeBasicSalaryFn = func(ctx context.Context, cid, eid string) (float64, error) {
		return 0, nil
	}

	svc := NewServiceWithOutbox(db, repo, nil, fixedClock("2026-04-01T09:00:00Z"), nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Generate(context.Background(), uuid.New().String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       2026,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrSalaryNotConfigured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_EmployeeNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.employeeBasicSalaryFn = func(ctx context.Context, cid, eid string) (float64, error) {
		return 0, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Generate(context.Background(), uuid.New().String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       2026,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestService_Generate_Regenerate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	companyID := uuid.New()
	employeeID := uuid.New()

	existing := Payroll{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Year:        2026,
		Month:       3,
		GrossSalary: 40000,
		Allowances:  1500,
		Deductions:  500,
		NetSalary:   41000,
		Status:      StatusPaid,
	}

	var saved Payroll
	repo := &fakeRepo{}
	repo.employeeBasicSalaryFn = func(ctx context.Context, cid, eid string) (float64, error) {
		return 44000, nil
	}
	repo.monthlyAttendanceStatsFn = func(ctx context.Context, cid, eid string, year, month int) (AttendanceStats, error) {
		return AttendanceStats{PresentDays: 22}, nil
	}
	repo.approvedLeaveSpansFn = func(ctx context.Context, cid, eid string, year, month int) ([]LeaveSpan, error) {
		return nil, nil
	}
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid string, year, month int) (*Payroll, error) {
		copied := existing
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	svc := NewServiceWithOutbox(db, repo, nil, fixedClock("2026-04-01T09:00:00Z"), nil)

	// Default: adjustments yang sudah ada dipertahankan.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(ctx, companyID.String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: employeeID.String(),
		Year:       2026,
		Month:      3,
	})
	assert.NoError(t, err)
	assert.Equal(t, existing.ID.String(), resp.ID)
	assert.Equal(t, 44000.0, resp.GrossSalary)
	assert.Equal(t, 1500.0, resp.Allowances)
	assert.Equal(t, 500.0, resp.Deductions)
	assert.Equal(t, 45000.0, resp.NetSalary)
	assert.Equal(t, StatusGenerated, resp.Status)
	assert.Equal(t, StatusGenerated, saved.Status)

	// Eksplisit false: adjustments direset ke nol.
	preserve := false
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Generate(ctx, companyID.String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID:          employeeID.String(),
		Year:                2026,
		Month:               3,
		PreserveAdjustments: &preserve,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, resp.Allowances)
	assert.Equal(t, 0.0, resp.Deductions)
	assert.Equal(t, 44000.0, resp.NetSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.Generate(ctx, uuid.New().String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       1999,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidYear)

	_, err = svc.Generate(ctx, uuid.New().String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       2026,
		Month:      0,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)

	_, err = svc.Generate(ctx, uuid.New().String(), uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: "not-a-uuid",
		Year:       2026,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)

	_, err = svc.Generate(ctx, "not-a-uuid", uuid.New().String(), GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       2026,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidCompanyID)

	_, err = svc.Generate(ctx, uuid.New().String(), "not-a-uuid", GeneratePayrollRequest{
		EmployeeID: uuid.New().String(),
		Year:       2026,
		Month:      3,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)
}

func TestService_UpdateAdjustments(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	existing := Payroll{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		EmployeeID:  uuid.New(),
		GrossSalary: 40000,
		NetSalary:   40000,
		Status:      StatusGenerated,
	}

	repo := &fakeRepo{}
	repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*Payroll, error) {
		copied := existing
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, p *Payroll) error { return nil }

	svc := NewService(db, repo)

	allowances, deductions := 2500.0, 1000.0
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateAdjustments(ctx, existing.CompanyID.String(), existing.ID.String(), UpdateAdjustmentsRequest{
		Allowances: &allowances,
		Deductions: &deductions,
	})
	assert.NoError(t, err)
	assert.Equal(t, 41500.0, resp.NetSalary)

	repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*Payroll, error) {
		return nil, gorm.ErrRecordNotFound
	}
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.UpdateAdjustments(ctx, uuid.New().String(), uuid.New().String(), UpdateAdjustmentsRequest{
		Allowances: &allowances,
		Deductions: &deductions,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	existing := Payroll{ID: uuid.New(), CompanyID: uuid.New(), EmployeeID: uuid.New(), Status: StatusGenerated}

	repo := &fakeRepo{}
	repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*Payroll, error) {
		copied := existing
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, p *Payroll) error { return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SetStatus(ctx, existing.CompanyID.String(), existing.ID.String(), StatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, resp.Status)

	// Tidak ada pembatasan transisi: PAID boleh kembali ke PENDING.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.SetStatus(ctx, existing.CompanyID.String(), existing.ID.String(), StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)

	_, err = svc.SetStatus(ctx, existing.CompanyID.String(), existing.ID.String(), "VOID")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetCurrent_NotGenerated(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid string, year, month int) (*Payroll, error) {
		assert.Equal(t, 2026, year)
		assert.Equal(t, 4, month)
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewServiceWithOutbox(db, repo, nil, fixedClock("2026-04-15T09:00:00Z"), nil)
	resp, err := svc.GetCurrent(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, resp)
}
