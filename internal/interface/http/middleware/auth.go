package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pustaka/bookstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
	"github.com/pustaka/bookstore/pkg/jwt"
	"github.com/pustaka/bookstore/pkg/response"
)

// Context键名
const (
	ctxKeyUserID   = "user_id"
	ctxKeyEmail    = "email"
	ctxKeyUsername = "username"
	ctxKeyToken    = "access_token"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单（已登出的Token立即失效）
// 3. 验证Token有效性
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.POST("/transactions", handler.Checkout)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrMissingToken)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 2. 检查Token黑名单（用户已登出或Token被强制失效）
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, apperrors.Wrap(err, "Failed to verify token"))
			c.Abort()
			return
		}
		if isBlacklisted {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // ErrTokenExpired、ErrInvalidToken都带401状态
			c.Abort()
			return
		}

		// 4. 将用户信息注入Context，后续Handler通过GetUserID读取
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyEmail, claims.Email)
		c.Set(ctxKeyUsername, claims.Username)
		c.Set(ctxKeyToken, tokenString)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID（0表示未登录）
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxKeyUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetAccessToken 从Context获取当前请求的Access Token
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get(ctxKeyToken); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// MustGetUserID 从Context获取用户ID
// 只能在RequireAuth之后的Handler中使用，未登录时panic
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
