package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statusConnected = "connected"
	statusError     = "error"
	statusDisabled  = "disabled"

	healthTimeout = 3 * time.Second
)

// Health reports the ledger store and the report cache. Only the store
// decides the status code: without Redis, reports are read from Postgres.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		store := storeStatus(ctx, db)
		code := http.StatusOK
		if store != statusConnected {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"ok":    code == http.StatusOK,
			"db":    store,
			"cache": cacheStatus(ctx, rdb),
		})
	}
}

func storeStatus(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return statusError
	}
	return statusConnected
}

func cacheStatus(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return statusDisabled
	}
	if rdb.Ping(ctx).Err() != nil {
		return statusError
	}
	return statusConnected
}
