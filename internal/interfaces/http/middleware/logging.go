package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// CustomLogger writes one access line per request. Principals resolved by the
// auth chain are attached when present.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(began),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if rid := c.GetString(constants.ContextKeyRequestID); rid != "" {
			fields = append(fields, "request_id", rid)
		}
		for _, key := range []string{constants.ContextKeyUserID, constants.ContextKeyCustomerID} {
			if v, ok := c.Get(key); ok {
				fields = append(fields, key, v)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}
