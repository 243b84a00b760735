package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"go-texerp/internal/middleware"
)

func setupIdempotencyRouter(t *testing.T, handlerBody []byte, handlerStatus int) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	router.Use(middleware.Idempotency(rdb))
	router.POST("/grns", func(c *gin.Context) {
		calls++
		c.Data(handlerStatus, "application/json; charset=utf-8", handlerBody)
	})

	return router, redisMock, &calls
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/grns", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	body := []byte(`{"ok":true,"data":{"doc_number":"0000000001"}}`)
	cacheKey := "idemp:/grns:u1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("first attempt caches the response and releases the lock", func(t *testing.T) {
		router, redisMock, calls := setupIdempotencyRouter(t, body, http.StatusCreated)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectSet(cacheKey, body, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(router, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("repeat replays the cached body without invoking the handler", func(t *testing.T) {
		router, redisMock, calls := setupIdempotencyRouter(t, body, http.StatusCreated)

		redisMock.ExpectGet(cacheKey).SetVal(string(body))

		w := postWithKey(router, "key-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, body, w.Body.Bytes())
		assert.Equal(t, 0, *calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		router, redisMock, calls := setupIdempotencyRouter(t, body, http.StatusCreated)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(router, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, *calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("failed attempt releases the lock without caching", func(t *testing.T) {
		router, redisMock, calls := setupIdempotencyRouter(t,
			[]byte(`{"ok":false}`), http.StatusInternalServerError)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		// no cache write for a non-2xx outcome, only the lock release
		redisMock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(router, "key-1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("request without a key passes straight through", func(t *testing.T) {
		router, redisMock, calls := setupIdempotencyRouter(t, body, http.StatusCreated)

		w := postWithKey(router, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
