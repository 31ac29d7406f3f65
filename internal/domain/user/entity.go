package user

import (
	"time"
)

// User 用户实体
// 设计说明：
// 1. Password存储bcrypt哈希值，绝不保存明文
// 2. Email是业务唯一标识（数据库层保证唯一性）
// 3. 认证由接口层中间件完成，领域层只关心身份数据
type User struct {
	ID        uint
	Email     string // 邮箱（唯一）
	Password  string // 密码哈希（bcrypt）
	Username  string // 显示名称
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// 参数中的hashedPassword必须是已加密的密码
func NewUser(email, hashedPassword, username string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Sanitized 返回去除敏感字段的副本（用于对外展示）
func (u *User) Sanitized() User {
	clone := *u
	clone.Password = ""
	return clone
}
