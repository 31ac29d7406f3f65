package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Status是HTTP状态码，由response层统一转换为HTTP响应
// 2. Message是用户友好的提示信息（与前端约定使用英文）
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Status  int    `json:"status"`  // HTTP状态码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(status int, format string, args ...interface{}) *AppError {
	return &AppError{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 预定义错误（避免每次都New）
// =========================================
// 规范：
// - 400: 参数/业务规则校验失败（含库存不足）
// - 401: 未登录、凭证无效
// - 404: 资源不存在（含越权访问他人交易，避免暴露存在性）
// - 409: 唯一字段冲突
// - 500: 系统内部错误

var (
	// 系统错误
	ErrInternal = New(http.StatusInternalServerError, "Internal server error")

	// 认证授权
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized")
	ErrMissingToken       = New(http.StatusUnauthorized, "Missing token")
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid or expired token")
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired")
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials")

	// 参数错误
	ErrInvalidParams = New(http.StatusBadRequest, "Invalid request parameters")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}
