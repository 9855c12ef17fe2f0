package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/attendance"
	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn        func(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error)
	checkOutFn       func(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error)
	recordBreakFn    func(ctx context.Context, companyID, employeeID string, req attendance.RecordBreakRequest) (attendance.AttendanceResponse, error)
	getTodayStatusFn func(ctx context.Context, companyID, employeeID string) (*attendance.AttendanceResponse, error)
	getHistoryFn     func(ctx context.Context, companyID, employeeID string) ([]attendance.AttendanceResponse, error)
	getMonthlyFn     func(ctx context.Context, companyID, employeeID string, year, month int) (attendance.MonthlyAttendanceResponse, error)
	getAllTodayFn    func(ctx context.Context, companyID string) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, companyID, employeeID)
}
func (f *fakeService) CheckOut(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, companyID, employeeID)
}
func (f *fakeService) RecordBreak(ctx context.Context, companyID, employeeID string, req attendance.RecordBreakRequest) (attendance.AttendanceResponse, error) {
	return f.recordBreakFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) GetTodayStatus(ctx context.Context, companyID, employeeID string) (*attendance.AttendanceResponse, error) {
	return f.getTodayStatusFn(ctx, companyID, employeeID)
}
func (f *fakeService) GetHistory(ctx context.Context, companyID, employeeID string) ([]attendance.AttendanceResponse, error) {
	return f.getHistoryFn(ctx, companyID, employeeID)
}
func (f *fakeService) GetMonthly(ctx context.Context, companyID, employeeID string, year, month int) (attendance.MonthlyAttendanceResponse, error) {
	return f.getMonthlyFn(ctx, companyID, employeeID, year, month)
}
func (f *fakeService) GetAllToday(ctx context.Context, companyID string) ([]attendance.AttendanceResponse, error) {
	return f.getAllTodayFn(ctx, companyID)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, cid, eid string) (attendance.AttendanceResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			return attendance.AttendanceResponse{ID: uuid.New().String(), CompanyID: cid, EmployeeID: eid}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", nil)
	h.CheckIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CheckIn_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, cid, eid string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", nil)
	h.CheckIn(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_RecordBreak_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/break", strings.NewReader(`{"break_start":"12:00:00"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.RecordBreak(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_GetTodayStatus_NotCheckedIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getTodayStatusFn: func(ctx context.Context, cid, eid string) (*attendance.AttendanceResponse, error) {
			return nil, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/today", nil)
	h.GetTodayStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"checked_in\":false")
}

func TestHandler_GetHistory_Pagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getHistoryFn: func(ctx context.Context, cid, eid string) ([]attendance.AttendanceResponse, error) {
			return []attendance.AttendanceResponse{
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/history?page=1&page_size=2", nil)
	h.GetHistory(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
	assert.Contains(t, w.Body.String(), "\"totalPages\":2")
}

func TestHandler_GetMonthly_BadMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getMonthlyFn: func(ctx context.Context, cid, eid string, year, month int) (attendance.MonthlyAttendanceResponse, error) {
			return attendance.MonthlyAttendanceResponse{}, attendanceerrors.ErrInvalidMonth
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Params = gin.Params{{Key: "year", Value: "2026"}, {Key: "month", Value: "13"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/month/2026/13", nil)
	h.GetMonthly(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month must be between 1 and 12")
}
