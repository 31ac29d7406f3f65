package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 所有查询只命中未软删除的记录
// 3. UpdateStock是条件原子更新，是防超卖的唯一保障
//    （不提供"先读后写"式的库存扣减，避免丢失更新）
type Repository interface {
	// Create 创建图书
	// 书名唯一性由数据库UNIQUE索引保证，冲突时返回ErrTitleDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书（下单校验时一次性解析整个购物车）
	// 只返回命中的记录，缺失的ID由调用方比对数量发现
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// FindByTitle 根据书名查找图书（唯一性校验时使用）
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书（软删除）
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// UpdateStock 调整库存（条件原子操作）
	// delta为正数表示增加，负数表示减少
	// 由存储层保证扣减后stock >= 0：
	//   UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
	// 未命中任何行时区分图书不存在与库存不足
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page         int    // 页码（从1开始）
	Limit        int    // 每页数量
	Search       string // 搜索关键词（匹配标题、作者）
	GenreID      uint   // 分类过滤（0表示不过滤）
	OrderByTitle string // 书名排序（asc | desc，空表示按创建时间降序）
}
