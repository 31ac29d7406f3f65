package genre

import (
	"context"
)

// Repository 分类仓储接口（依赖倒置原则）
// 所有查询只命中未软删除的记录
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, genre *Genre) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Genre, error)

	// FindByName 根据名称查找分类（唯一性校验时使用）
	FindByName(ctx context.Context, name string) (*Genre, error)

	// List 查询全部分类（按创建时间降序，附带在售图书数量）
	List(ctx context.Context) ([]*Genre, error)

	// Update 更新分类信息
	Update(ctx context.Context, genre *Genre) error

	// Delete 删除分类（软删除）
	Delete(ctx context.Context, id uint) error

	// CountBooks 统计分类下未删除的图书数量
	CountBooks(ctx context.Context, id uint) (int64, error)
}
