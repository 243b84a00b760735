package concern

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	concerns := r.Group("/concerns", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		concerns.POST("", handler.Create)
		concerns.GET("", handler.GetAll)
		concerns.GET("/:id", handler.GetByID)
		concerns.PATCH("/:id", handler.Update)
		concerns.DELETE("/:id", handler.Delete)
	}
}
