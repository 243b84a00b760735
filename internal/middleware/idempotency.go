package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyCacheTTL = 24 * time.Hour
	// short-lived lock so a crashed attempt cannot wedge the key
	idempotencyLockTTL = 30 * time.Second
)

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated POST carrying
// the same Idempotency-Key, and rejects a duplicate that arrives while
// the first attempt is still in flight. Useful for document saves fired
// twice by a flaky client.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this key is already being processed",
			})
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		// cache only successful outcomes; a failed attempt may retry
		// with the same key once the lock drops
		if status := c.Writer.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
			rdb.Set(c.Request.Context(), cacheKey, rec.body.Bytes(), idempotencyCacheTTL)
		}
		rdb.Del(c.Request.Context(), lockKey)
	}
}
