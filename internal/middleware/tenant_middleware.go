package middleware

import (
	"go-texerp/internal/shared/contextutil"
	"go-texerp/internal/shared/response"
	tenanterrors "go-texerp/internal/tenant/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantContext requires an X-Tenant-ID header on every document-scoped
// route and propagates it to the service layer. Selecting the tenant is
// a login-time concern; by the time a request lands here the client
// must already know which tenant it works under.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			errObj := tenanterrors.ErrTenantRequired
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		if _, err := uuid.Parse(tenantID); err != nil {
			errObj := tenanterrors.ErrInvalidTenantID
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set("tenant_id", tenantID)

		ctx := contextutil.WithTenantID(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
