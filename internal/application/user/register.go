package user

import (
	"context"

	"github.com/pustaka/bookstore/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：应用层负责编排（调用领域服务、组装响应DTO），
// 业务规则（邮箱格式、密码强度）在领域服务里
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Username string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		return nil, err
	}

	info := newUserInfo(u)
	return &info, nil
}
