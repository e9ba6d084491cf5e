package middleware

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/commentlog/pkg/logger"
)

// AccessLog 每个请求一条结构化日志；5xx 同时上报 Sentry（已初始化时）
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if who, ok := Caller(c); ok {
			fields = append(fields, zap.String("caller", who.Short()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("http request", fields...)
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				if err := c.Errors.Last(); err != nil {
					hub.CaptureException(err.Err)
				} else {
					hub.CaptureMessage(c.Request.Method + " " + c.FullPath() + " returned 5xx")
				}
			}
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// Sentry 未配置 DSN 时 sentry 客户端为空，中间件只负责 recover
func Sentry() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true, WaitForDelivery: false, Timeout: 2 * time.Second})
}

// FlushSentry 退出前等待事件发送
func FlushSentry() { sentry.Flush(2 * time.Second) }
