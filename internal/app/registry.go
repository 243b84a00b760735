package app

import (
	"go-texerp/internal/auth"
	"go-texerp/internal/concern"
	"go-texerp/internal/document"
	"go-texerp/internal/messaging/kafka"
	"go-texerp/internal/middleware"
	"go-texerp/internal/process"
	"go-texerp/internal/shared/counter"
	"go-texerp/internal/tenant"
	"go-texerp/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	concernRepo := concern.NewRepository(gormDB)
	tenantRepo := tenant.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	processRepo := process.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	tenantService := tenant.NewService(tenantRepo, concernRepo, rdb)
	// concern writes invalidate the tenant candidate cache
	concernService := concern.NewService(concernRepo, tenantService)
	authService := auth.NewService(authRepo, tenantService)
	userService := user.NewService(gormDB, userRepo)
	processService := process.NewService(processRepo)
	documentService := document.NewService(gormDB, documentRepo, counterRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	concernHandler := concern.NewHandler(concernService)
	tenantHandler := tenant.NewHandler(tenantService)
	userHandler := user.NewHandler(userService)
	processHandler := process.NewHandler(processService)
	grnHandler := document.NewHandler(documentService, document.SeriesGoodsReceipt)
	quotationHandler := document.NewHandler(documentService, document.SeriesQuotation)

	// --- Routes Registration ---
	api := router.Group(
		"/api/v1",
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(20), 40),
	)
	{
		auth.RegisterRoutes(api, authHandler)
		concern.RegisterRoutes(api, concernHandler)
		tenant.RegisterRoutes(api, tenantHandler)
		user.RegisterRoutes(api, userHandler)
		process.RegisterRoutes(api, processHandler)
		document.RegisterRoutes(api, grnHandler, quotationHandler, rdb)
	}

	return nil
}
