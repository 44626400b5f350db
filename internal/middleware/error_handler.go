package middleware

import (
	"net/http"
	"time"

	"greengrocer/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const internalErrorDetail = "Internal server error"

// ErrorHandler reports every error a handler attached with c.Error. Handlers
// normally answer with a safe message first; when none was written the client
// gets a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			requestEvent(log.Error(), c).
				Int("status", c.Writer.Status()).
				Err(ginErr.Err).
				Msg("ledger request failed")
		}
		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorDetail))
		}
	}
}

// Recovery answers a panicking handler with the same 500 body ErrorHandler
// uses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestEvent(log.Error(), c).Interface("panic", r).Msg("handler panicked")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorDetail))
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}

// Logger writes one access line per request. Server errors are raised to Warn.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		requestEvent(ev, c).
			Str("route", c.FullPath()).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func requestEvent(ev *zerolog.Event, c *gin.Context) *zerolog.Event {
	return ev.
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path)
}
