package payslip

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-payroll/internal/middleware"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyTTL = 24 * time.Hour
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payslip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payslip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if lk := c.GetString(middleware.IdempotencyLockKey); lk != "" {
			defer h.rdb.Del(ctx, lk)
		}
	}

	var req GeneratePayslipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Generate(ctx, c.GetString("company_id"), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck := c.GetString(middleware.IdempotencyCacheKey); ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				if err := h.rdb.Set(ctx, ck, payload, idempotencyTTL).Err(); err != nil {
					h.logger.Warn("store idempotent response failed", zap.Error(err))
				}
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateAsync(c *gin.Context) {
	var req GeneratePayslipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RequestGeneration(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if !middleware.IsPrivileged(c) {
		own, ok := middleware.CurrentEmployeeID(c)
		if !ok {
			h.writeServiceError(c, paysliperrors.ErrNoEmployeeProfile)
			return
		}
		if filter.EmployeeID != 0 && filter.EmployeeID != own {
			h.writeServiceError(c, paysliperrors.ErrOtherEmployee)
			return
		}
		filter.EmployeeID = own
	}

	resp, meta, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := ensureOwner(c, resp.EmployeeID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadPDF(c *gin.Context) {
	pdf, resp, err := h.service.RenderPDF(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := ensureOwner(c, resp.EmployeeID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payslip_%d_%s.pdf", resp.EmployeeID, resp.PayPeriodStart)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) Export(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	file, err := h.service.Export(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename(filter))
	c.Data(http.StatusOK, xlsxMediaType, file)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.MarkPaid(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ensureOwner hides other employees' payslips from non-privileged callers.
func ensureOwner(c *gin.Context, employeeID int64) error {
	if middleware.IsPrivileged(c) {
		return nil
	}
	own, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		return paysliperrors.ErrNoEmployeeProfile
	}
	if own != employeeID {
		return paysliperrors.ErrOtherEmployee
	}
	return nil
}
