package document

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(rg *gin.RouterGroup, grns, quotations *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	mount(rg, "/grns", grns, redisClient)
	mount(rg, "/quotations", quotations, redisClient)
}

func mount(rg *gin.RouterGroup, path string, h *Handler, redisClient *redis.Client) {
	docs := rg.Group(path, middleware.AuthMiddleware(), middleware.TenantContext())
	{
		docs.GET("", h.GetAll)
		docs.GET("/next-number", h.NextNumber)
		docs.GET("/:id", h.GetByID)
		docs.GET("/:id/history", h.GetHistory)
		if redisClient != nil {
			docs.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RequirePermission("can_add"),
				h.Create,
			)
		} else {
			docs.POST("", middleware.RequirePermission("can_add"), h.Create)
		}
		docs.PUT("/:id", middleware.RequirePermission("can_edit"), h.Update)
		docs.DELETE("/:id", middleware.RequirePermission("can_delete"), h.Delete)
	}
}
