package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Success标识请求是否成功，HTTP状态码另行携带
// 2. Message是用户友好的提示信息（成功时可省略）
// 3. Data是业务数据，失败时为null
// 4. Meta是分页等附加信息
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 带提示信息的成功响应（200）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMeta 带分页信息的成功响应（200）
func SuccessWithMeta(c *gin.Context, message string, data, meta interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := checkoutUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	// 记录详细错误到日志（包含内部错误），客户端只看到Message
	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(appErr.Status, Response{
		Success: false,
		Message: appErr.Message,
	})
}

// ErrorWithStatus 自定义状态码和消息
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// BadRequest 参数错误响应（400）
// 用于gin参数绑定失败的场景
func BadRequest(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusBadRequest, message)
}

// =========================================
// 分页信息
// =========================================

// PageMeta 分页元信息
// 约定：prev_page/next_page不存在时为null
type PageMeta struct {
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
	PrevPage *int `json:"prev_page"`
	NextPage *int `json:"next_page"`
}

// NewPageMeta 创建分页元信息
func NewPageMeta(page, limit int, total int64) *PageMeta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	meta := &PageMeta{
		Page:  page,
		Limit: limit,
	}
	if page > 1 {
		prev := page - 1
		meta.PrevPage = &prev
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}
