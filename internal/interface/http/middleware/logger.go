package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pustaka/bookstore/pkg/tracing"
)

// Logger 请求日志中间件
// 设计说明：
// 1. 为每个请求生成唯一的请求ID，写回X-Request-ID响应头
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 有追踪上下文时一并输出TraceID，便于日志与Jaeger关联
//
// 注意不记录敏感信息（密码、Token）和完整请求体
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		traceID := tracing.ExtractTraceID(c.Request.Context())

		statusColor := getStatusColor(c.Writer.Status())
		methodColor := getMethodColor(c.Request.Method)
		resetColor := "\033[0m"

		fmt.Printf(
			statusColor+"[GIN] %s | %3d | %13v | %15s | %-7s %s"+resetColor+" request_id=%s trace_id=%s %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			methodColor+c.Request.Method+resetColor,
			c.Request.URL.Path,
			requestID,
			traceID,
			errMsg,
		)

		// 慢请求警告
		if latency > 3*time.Second {
			fmt.Printf("[WARN] Slow request: %s %s took %v\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
			)
		}
	}
}

// getStatusColor 根据HTTP状态码返回终端颜色
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m" // 绿色
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m" // 青色
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // 黄色
	default:
		return "\033[31m" // 红色
	}
}

// getMethodColor 根据HTTP方法返回终端颜色
func getMethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m"
	case "POST":
		return "\033[36m"
	case "PUT":
		return "\033[33m"
	case "DELETE":
		return "\033[31m"
	case "PATCH":
		return "\033[32m"
	default:
		return "\033[0m"
	}
}
