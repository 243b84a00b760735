package tenant

import (
	"go-texerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tenants := r.Group("/tenants", middleware.AuthMiddleware())
	{
		tenants.GET("", handler.GetCandidates)
		tenants.GET("/:id", handler.GetByID)
		tenants.POST("", middleware.RequireAdmin(), handler.Create)
	}
}
