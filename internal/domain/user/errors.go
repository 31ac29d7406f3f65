package user

import (
	"net/http"

	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(http.StatusNotFound, "User not found")

	// ErrEmailRegistered 邮箱已被注册
	ErrEmailRegistered = apperrors.New(http.StatusConflict, "Email already registered")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(http.StatusBadRequest, "Invalid email format")

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.New(http.StatusBadRequest, "Password must be 8-20 characters with letters and digits")

	// ErrInvalidUsername 用户名不合法
	ErrInvalidUsername = apperrors.New(http.StatusBadRequest, "Username must be 2-50 characters")
)
