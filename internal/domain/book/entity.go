package book

import (
	"time"
)

// Book 图书实体（聚合根）
// 设计说明：
// 1. 价格使用int64存储最小货币单位（避免浮点数精度问题）
// 2. Title作为业务唯一标识（数据库层保证唯一性）
// 3. GenreID关联分类，图书必须归属一个未删除的分类
// 4. 软删除：被交易引用过的图书永不物理删除，保证历史订单可追溯
type Book struct {
	ID          uint
	Title       string // 书名（唯一）
	Author      string // 作者
	Description string // 图书描述
	Price       int64  // 价格（最小货币单位）
	Stock       int    // 库存数量
	GenreID     uint   // 分类ID
	GenreName   string // 分类名称（查询时填充，不落库）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书（工厂方法）
func NewBook(title, author, description string, price int64, stock int, genreID uint) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		Description: description,
		Price:       price,
		Stock:       stock,
		GenreID:     genreID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdatePrice 更新价格（领域行为）
// 业务规则：价格不能为负数
// 注意：改价不影响历史交易明细（价格快照见transaction.Item）
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 设置库存（领域行为）
// 业务规则：库存不能为负数
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// HasStock 检查库存是否满足购买数量
func (b *Book) HasStock(quantity int) bool {
	return quantity > 0 && b.Stock >= quantity
}

// UpdateInfo 更新图书基本信息
// 空值表示不修改对应字段
func (b *Book) UpdateInfo(title, author, description string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}
