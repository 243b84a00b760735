package app

import (
	"os"

	"go-texerp/internal/auth"
	"go-texerp/internal/concern"
	"go-texerp/internal/document"
	"go-texerp/internal/process"
	"go-texerp/internal/shared/connection"
	"go-texerp/internal/shared/counter"
	"go-texerp/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&concern.Concern{},
		&tenant.Tenant{},
		&auth.User{},
		&auth.UserConcern{},
		&process.Process{},
		&document.Header{},
		&document.Line{},
		&document.ProcessLine{},
		&counter.Counter{},
	); err != nil {
		return err
	}

	// The outbox carries operational columns the repository never maps
	// back into Go, so its schema is kept as plain DDL.
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id VARCHAR(100),
			aggregate_type VARCHAR(50) NOT NULL,
			aggregate_id UUID NOT NULL,
			event_type VARCHAR(100) NOT NULL,
			topic VARCHAR(200) NOT NULL,
			payload JSONB NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			error_message VARCHAR(500),
			next_retry_at TIMESTAMPTZ,
			processed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`).Error
}
