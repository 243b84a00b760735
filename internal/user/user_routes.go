package user

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	users := rg.Group("/users", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		users.GET("", h.GetAll)
		users.GET("/:id", h.GetByID)
		users.PATCH("/:id", h.Update)
		users.POST("/:id/reset-password", h.ResetPassword)
		users.DELETE("/:id", h.Delete)
	}
}
