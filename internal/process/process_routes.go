package process

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	processes := rg.Group("/processes", middleware.AuthMiddleware(), middleware.TenantContext())
	{
		processes.GET("", h.GetAll)
		processes.GET("/:id", h.GetByID)
		processes.POST("", middleware.RequirePermission("can_add"), h.Create)
		processes.PATCH("/:id", middleware.RequirePermission("can_edit"), h.Update)
		processes.DELETE("/:id", middleware.RequirePermission("can_delete"), h.Delete)
	}
}
