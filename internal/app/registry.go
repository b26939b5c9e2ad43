package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/salarytemplate"
	"go-payroll/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// payslipDeps builds the generation pipeline shared by the API and the
// batch consumer.
func payslipDeps(
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	logger *zap.Logger,
) (payslip.Service, attendance.Service) {
	employeeRepo := employee.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	attendanceService := attendance.NewService(attendance.NewRepository(gormDB), logger)
	payslipRepo := payslip.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	generator := payslip.NewGenerator(
		db,
		payslipRepo,
		outboxRepo,
		employeeRepo,
		structureRepo,
		attendanceService,
		cfg.Payroll.GenerationWorkers,
		logger,
	)
	audit := bootstrap.NewStdoutAuditLogger(logger)

	return payslip.NewService(db, payslipRepo, generator, outboxRepo, audit, logger), attendanceService
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(employee.NewRepository(gormDB), rdb, logger)
	templateService := salarytemplate.NewService(db, salarytemplate.NewRepository(gormDB), rdb, logger)
	structureService := salarystructure.NewService(db, salarystructure.NewRepository(gormDB), logger)
	payslipService, attendanceService := payslipDeps(cfg, db, gormDB, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	templateHandler := salarytemplate.NewHandler(templateService, logger)
	structureHandler := salarystructure.NewHandler(structureService, logger)
	payslipHandler := payslip.NewHandler(payslipService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		salarytemplate.RegisterRoutes(api, templateHandler, rbacService)
		salarystructure.RegisterRoutes(api, structureHandler, rbacService)
		payslip.RegisterRoutes(api, payslipHandler, rbacService, cfg.Payroll)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
