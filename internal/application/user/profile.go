package user

import (
	"context"

	"github.com/pustaka/bookstore/internal/domain/user"
)

// GetProfileUseCase 获取个人信息用例
type GetProfileUseCase struct {
	userService user.Service
}

// NewGetProfileUseCase 创建获取个人信息用例
func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

// Execute 根据JWT中的用户ID返回个人信息
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := newUserInfo(u)
	return &info, nil
}
