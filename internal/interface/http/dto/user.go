package dto

// RegisterRequest HTTP注册请求
// validator tag说明：
// - required: 必填字段
// - email: 邮箱格式校验
// - min/max: 长度范围校验
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"passw0rd123"`
	Username string `json:"username" binding:"required,min=2,max=50" example:"reader"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd123"`
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
