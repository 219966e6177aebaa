package app

import (
	"database/sql"

	"hrms-lite/internal/attendance"
	"hrms-lite/internal/config"
	"hrms-lite/internal/employee"
	"hrms-lite/internal/health"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers for every module.
// rdb may be nil.
func NewRouter(
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) *gin.Engine {
	logger := zap.L()

	router := gin.New()
	router.Use(
		middleware.ContextLogger(logger),
		gin.Recovery(),
		middleware.CORS(),
	)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	var outboxRepo kafka.OutboxRepository
	if cfg.OutboxEnabled {
		outboxRepo = kafka.NewOutboxRepository(db)
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb,
		employee.WithCacheTTL(cfg.Redis.CacheTTL),
		employee.WithLogger(logger),
	)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, logger)

	// --- Handlers ---
	healthHandler := health.NewHandler(db, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)

	// --- Routes ---
	writeMiddleware := []gin.HandlerFunc{
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		middleware.Idempotency(rdb),
	}

	health.RegisterRoutes(router, healthHandler)
	root := router.Group("")
	employee.RegisterRoutes(root, employeeHandler, writeMiddleware...)
	attendance.RegisterRoutes(root, attendanceHandler, writeMiddleware...)

	return router
}
