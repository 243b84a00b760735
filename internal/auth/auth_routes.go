package auth

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), h.Register)
		auth.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
