package router

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/machaira/blog/internal/logging"
)

// RequestIDHeader 是请求 id 的响应头，客户端传入时沿用。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID 为每个请求分配 id 并写回响应头。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger 每个请求记录一行，5xx 记为 ERROR，4xx 记为 WARN。
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		line := "%s %s %d %s [%s]"
		args := []any{c.Request.Method, path, status, time.Since(start).Round(time.Microsecond), c.GetString(requestIDKey)}
		if errs := c.Errors.String(); errs != "" {
			line += " %s"
			args = append(args, strings.TrimSpace(errs))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error(line, args...)
		case status >= http.StatusBadRequest:
			log.Warn(line, args...)
		default:
			log.Info(line, args...)
		}
	}
}

// Recovery 捕获 handler 中的 panic，记录日志后返回 500。
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		log.Error("panic serving %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
