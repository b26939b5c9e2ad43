package payslip

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	cfg config.PayrollConfig,
) {
	generateLimit := middleware.RateLimitByUser(rate.Limit(cfg.GenerateRatePerSecond), cfg.GenerateRateBurst)

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		generate := []gin.HandlerFunc{
			middleware.RBACAuthorize(rbacService, "payslip", "generate"),
			generateLimit,
		}
		if handler.rdb != nil {
			generate = append(generate, middleware.Idempotency(handler.rdb))
		}
		payslips.POST("/generate", append(generate, handler.Generate)...)
		payslips.POST("/generate/async", middleware.RBACAuthorize(rbacService, "payslip", "generate"), generateLimit, handler.GenerateAsync)

		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetAll)
		payslips.GET("/export", middleware.RBACAuthorize(rbacService, "payslip", "export"), handler.Export)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetByID)
		payslips.GET("/:id/pdf", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.DownloadPDF)
		payslips.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payslip", "pay"), handler.MarkPaid)
	}
}
