// Package middleware holds the gin middlewares shared by the HTTP server
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"nyaya-backend/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// DefaultSlow is the access log threshold above which requests log at warn
const DefaultSlow = 2 * time.Second

// RequestID honours an inbound X-Request-ID or generates one, stores it on the
// request context and echoes it in the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
}

// AccessLog logs method, path, status, elapsed, bytes and client ip once per
// request using the request scoped logger
func AccessLog(opt AccessLogOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		log := logger.C(c.Request.Context())
		evt := log.Info()
		if opt.Slow > 0 && elapsed >= opt.Slow {
			evt = log.Warn()
		}
		evt.Int("status", c.Writer.Status()).
			Dur("elapsed", elapsed).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Msg("request done")
	}
}

// Recovery converts panics into a JSON 500 and logs the stack with the
// request id
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				lines := strings.Split(string(debug.Stack()), "\n")
				logger.C(c.Request.Context()).Error().
					Interface("panic", v).
					Msgf("panic recovered\n%s", strings.Join(lines, "\n\t"))

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
		}()
		c.Next()
	}
}
