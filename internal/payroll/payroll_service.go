package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka"
	payrollerrors "dayflow/internal/payroll/errors"
	"dayflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (PayrollResponse, error)
	GetCurrent(ctx context.Context, companyID, employeeID string) (*PayrollResponse, error)
	GetHistory(ctx context.Context, companyID, employeeID string) ([]PayrollResponse, error)
	GetAllByPeriod(ctx context.Context, companyID string, year, month int) ([]PayrollResponse, error)
	UpdateAdjustments(ctx context.Context, companyID, id string, req UpdateAdjustmentsRequest) (AdjustmentsResponse, error)
	SetStatus(ctx context.Context, companyID, id, status string) (PayrollResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, time.Now, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, now: now, logger: l}
}

func (s *service) Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	if req.Year < 2000 || req.Year > 2100 {
		return PayrollResponse{}, payrollerrors.ErrInvalidYear
	}
	if req.Month < 1 || req.Month > 12 {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	basicSalary, err := qtx.EmployeeBasicSalary(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}
	if basicSalary <= 0 {
		return PayrollResponse{}, payrollerrors.ErrSalaryNotConfigured
	}

	stats, err := qtx.MonthlyAttendanceStats(ctx, companyID, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		s.logger.Error("generate payroll attendance stats failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	spans, err := qtx.ApprovedLeaveSpans(ctx, companyID, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		s.logger.Error("generate payroll leave spans failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	paidLeaveDays, unpaidLeaveDays := 0, 0
	for _, span := range spans {
		days := MonthSpanDays(span.StartDate, span.EndDate, req.Year, req.Month)
		switch span.LeaveType {
		case "PAID":
			paidLeaveDays += days
		case "UNPAID":
			unpaidLeaveDays += days
		}
	}

	result := Compute(ComputeInput{
		BasicSalary:     basicSalary,
		PresentDays:     stats.PresentDays,
		HalfDays:        stats.HalfDays,
		PaidLeaveDays:   paidLeaveDays,
		UnpaidLeaveDays: unpaidLeaveDays,
	})

	preserveAdjustments := true
	if req.PreserveAdjustments != nil {
		preserveAdjustments = *req.PreserveAdjustments
	}

	existing, err := qtx.FindByEmployeeAndPeriod(ctx, companyID, req.EmployeeID, req.Year, req.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	var p *Payroll
	if existing != nil {
		p = existing
		if !preserveAdjustments {
			p.Allowances = 0
			p.Deductions = 0
		}
	} else {
		p = &Payroll{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			Year:       req.Year,
			Month:      req.Month,
		}
	}

	p.BasicSalary = basicSalary
	p.TotalWorkingDays = StandardWorkingDays
	p.PresentDays = stats.PresentDays
	p.HalfDays = stats.HalfDays
	p.AbsentDays = stats.AbsentDays
	p.PaidLeaveDays = paidLeaveDays
	p.UnpaidLeaveDays = unpaidLeaveDays
	p.PayableDays = result.PayableDays
	p.PerDayRate = result.PerDayRate
	p.GrossSalary = result.GrossSalary
	p.NetSalary = round2(result.GrossSalary + p.Allowances - p.Deductions)
	p.Status = StatusGenerated
	p.GeneratedBy = actorUUID

	if existing != nil {
		err = qtx.Update(ctx, p)
	} else {
		err = qtx.Create(ctx, p)
	}
	if err != nil {
		s.logger.Error("generate payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollGeneratedEvent{
			EventType:   "payroll_generated",
			RequestID:   rid,
			PayrollID:   p.ID.String(),
			CompanyID:   companyID,
			EmployeeID:  req.EmployeeID,
			Year:        req.Year,
			Month:       req.Month,
			GeneratedBy: actorID,
			OccurredAt:  s.now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("generate payroll outbox persist failed",
				zap.String("payroll_id", p.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("generate payroll success",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("net_salary", p.NetSalary),
	)
	return mapToResponse(*p), nil
}

// GetCurrent mengembalikan payroll bulan berjalan, nil jika belum digenerate.
func (s *service) GetCurrent(ctx context.Context, companyID, employeeID string) (*PayrollResponse, error) {
	now := s.now().UTC()

	p, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, now.Year(), int(now.Month()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := mapToResponse(*p)
	return &resp, nil
}

func (s *service) GetHistory(ctx context.Context, companyID, employeeID string) ([]PayrollResponse, error) {
	rows, err := s.repo.FindHistoryByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAllByPeriod(ctx context.Context, companyID string, year, month int) ([]PayrollResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, payrollerrors.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return nil, payrollerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindAllByPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) UpdateAdjustments(ctx context.Context, companyID, id string, req UpdateAdjustmentsRequest) (AdjustmentsResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update adjustments begin tx failed", zap.Error(err))
		return AdjustmentsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentsResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return AdjustmentsResponse{}, err
	}

	p.Allowances = *req.Allowances
	p.Deductions = *req.Deductions
	p.NetSalary = round2(p.GrossSalary + p.Allowances - p.Deductions)

	if err := qtx.Update(ctx, p); err != nil {
		return AdjustmentsResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentsResponse{}, err
	}

	s.logger.Info("update adjustments success",
		zap.String("payroll_id", id),
		zap.Float64("net_salary", p.NetSalary),
	)
	return AdjustmentsResponse{
		Allowances: p.Allowances,
		Deductions: p.Deductions,
		NetSalary:  p.NetSalary,
	}, nil
}

// SetStatus tidak membatasi transisi antar status; penyederhanaan yang
// disengaja dari alur kerja aslinya.
func (s *service) SetStatus(ctx context.Context, companyID, id, status string) (PayrollResponse, error) {
	if status != StatusPending && status != StatusGenerated && status != StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set payroll status begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	p.Status = status
	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("set payroll status success",
		zap.String("payroll_id", id),
		zap.String("status", status),
	)
	return mapToResponse(*p), nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:               p.ID.String(),
		CompanyID:        p.CompanyID.String(),
		EmployeeID:       p.EmployeeID.String(),
		Year:             p.Year,
		Month:            p.Month,
		BasicSalary:      p.BasicSalary,
		TotalWorkingDays: p.TotalWorkingDays,
		PresentDays:      p.PresentDays,
		HalfDays:         p.HalfDays,
		AbsentDays:       p.AbsentDays,
		PaidLeaveDays:    p.PaidLeaveDays,
		UnpaidLeaveDays:  p.UnpaidLeaveDays,
		PayableDays:      p.PayableDays,
		PerDayRate:       p.PerDayRate,
		GrossSalary:      p.GrossSalary,
		Allowances:       p.Allowances,
		Deductions:       p.Deductions,
		NetSalary:        p.NetSalary,
		Status:           p.Status,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
		resp.EmployeeNumber = p.Employee.EmployeeNumber
		resp.Department = p.Employee.Department
	}
	return resp
}

func mapToListResponse(rows []Payroll) []PayrollResponse {
	res := make([]PayrollResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
