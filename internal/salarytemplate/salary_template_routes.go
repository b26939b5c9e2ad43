package salarytemplate

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	templates := r.Group("/salary-templates")
	templates.Use(middleware.AuthMiddleware())
	{
		templates.GET("", middleware.RBACAuthorize(rbacService, "salary_template", "read"), handler.GetAll)
		templates.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_template", "read"), handler.GetByID)
		templates.POST("", middleware.RBACAuthorize(rbacService, "salary_template", "create"), handler.Create)
		templates.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_template", "update"), handler.Update)
		templates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_template", "delete"), handler.Delete)
	}
}
