package app

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects to Postgres and Redis, migrates the schema and mounts
// every module on router.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := Migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.ContextLogger(logger))

	return registerModules(router, cfg, sqlDB, gormDB, redisClient, logger)
}
