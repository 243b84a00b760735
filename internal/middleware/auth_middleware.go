package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-texerp/internal/auth/errors"
	"go-texerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token and copies its claims into
// the gin context. The token alone decides entitlements; no user row is
// read here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		if active, ok := claims["is_active"].(bool); ok && !active {
			errObj := autherrors.ErrAccountInactive
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)

		c.Set("user_id", userID)
		c.Set("username", username)
		c.Set("is_admin", boolClaim(claims, "is_admin"))
		c.Set("can_add", boolClaim(claims, "can_add"))
		c.Set("can_edit", boolClaim(claims, "can_edit"))
		c.Set("can_delete", boolClaim(claims, "can_delete"))
		c.Set("dc_close", boolClaim(claims, "dc_close"))
		c.Set("concern_ids", stringSliceClaim(claims, "concern_ids"))

		c.Next()
	}
}

func boolClaim(claims jwt.MapClaims, key string) bool {
	v, _ := claims[key].(bool)
	return v
}

// stringSliceClaim handles the []interface{} shape JSON decoding gives
// array claims.
func stringSliceClaim(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key].([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
