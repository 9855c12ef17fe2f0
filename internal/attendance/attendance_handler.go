package attendance

import (
	"net/http"
	"strconv"

	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/response"

	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorEmployeeID(c *gin.Context) string {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("user_id_validated")
	}
	return employeeID
}

func (h *Handler) CheckIn(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	resp, err := h.service.CheckIn(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	resp, err := h.service.CheckOut(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordBreak(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	var req RecordBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.RecordBreak(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTodayStatus(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	resp, err := h.service.GetTodayStatus(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resp == nil {
		response.Success(c, http.StatusOK, gin.H{"checked_in": false}, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	resp, err := h.service.GetHistory(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetMonthly(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "year must be a valid number")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidMonth)
		return
	}

	resp, err := h.service.GetMonthly(c.Request.Context(), companyID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllToday(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAllToday(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
