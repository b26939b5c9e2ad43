package attendance

import (
	"net/http"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

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

func (h *Handler) Summary(c *gin.Context) {
	companyID := c.GetString("company_id")

	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	employeeID, err := resolveEmployee(c, q.EmployeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	start, err := time.Parse("2006-01-02", q.Start)
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}
	end, err := time.Parse("2006-01-02", q.End)
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), companyID, employeeID, start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToSummaryResponse(summary), nil)
}

// resolveEmployee pins employees to their own record; HR and admins must name one.
func resolveEmployee(c *gin.Context, requested int64) (int64, error) {
	if middleware.IsPrivileged(c) {
		if requested <= 0 {
			return 0, attendanceerrors.ErrInvalidEmployeeID
		}
		return requested, nil
	}

	own, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		return 0, attendanceerrors.ErrInvalidEmployeeID
	}
	if requested != 0 && requested != own {
		return 0, attendanceerrors.ErrOtherEmployee
	}
	return own, nil
}
