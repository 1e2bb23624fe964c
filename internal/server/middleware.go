package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	headerRequestID = "X-Request-ID"

	// ctxKeyRequestID and ctxKeyLogger are gin context keys.
	ctxKeyRequestID = "request_id"
	ctxKeyLogger    = "logger"
)

// requestID reuses an inbound X-Request-ID or generates one, and echoes it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// accessLog stores a request-scoped logger and writes one line per request.
func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With().Str("request_id", c.GetString(ctxKeyRequestID)).Logger()
		c.Set(ctxKeyLogger, reqLog)

		c.Next()

		status := c.Writer.Status()
		ev := reqLog.Info()
		if status >= http.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= http.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// recovery turns a handler panic into the standard 500 envelope.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log := requestLogger(c)
		log.Error().Interface("panic", rec).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, failureBody{
			Error:   msgGenerationFailed,
			Details: "internal server error",
		})
	})
}

// requestLogger returns the logger set by accessLog, or a disabled one.
func requestLogger(c *gin.Context) zerolog.Logger {
	if v, ok := c.Get(ctxKeyLogger); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return l
		}
	}
	return zerolog.Nop()
}
