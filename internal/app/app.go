package app

import (
	"context"
	"database/sql"

	"hrms-lite/internal/config"
	"hrms-lite/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

// BuildApp connects the stores, brings the schema up to date and mounts
// every module on a new router. Redis is optional.
func BuildApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := Migrate(ctx, gormDB, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, cfg.DB.MaxRetries)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Info("REDIS_ADDR not set, employee list cache disabled")
	}

	router := NewRouter(cfg, sqlDB, gormDB, rdb)

	return &App{
		Router: router,
		GormDB: gormDB,
		DB:     sqlDB,
		Redis:  rdb,
	}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
