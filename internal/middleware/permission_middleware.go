package middleware

import (
	autherrors "go-texerp/internal/auth/errors"
	"go-texerp/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates administrative routes. Administrators bypass the
// per-action permission flags everywhere else.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			errObj := autherrors.ErrForbidden
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission checks a single token flag ("can_add", "can_edit",
// "can_delete", "dc_close") set by AuthMiddleware.
func RequirePermission(flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool("is_admin") || c.GetBool(flag) {
			c.Next()
			return
		}

		errObj := autherrors.ErrForbidden
		response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
		c.Abort()
	}
}
