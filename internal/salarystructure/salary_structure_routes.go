package salarystructure

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("/me", middleware.RBACAuthorize(rbacService, "salary_structure", "read_self"), handler.GetMine)
		structures.GET("", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), handler.GetAll)
		structures.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), handler.GetByID)
		structures.GET("/employee/:employee_id/breakdown", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), handler.GetBreakdown)
		structures.POST("", middleware.RBACAuthorize(rbacService, "salary_structure", "create"), handler.Create)
		structures.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "update"), handler.Update)
		structures.POST("/:id/deactivate", middleware.RBACAuthorize(rbacService, "salary_structure", "update"), handler.Deactivate)
	}
}
