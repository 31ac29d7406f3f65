package genre

import (
	"time"
)

// Genre 图书分类实体
// 设计说明：
// 1. Name在未删除的分类中唯一（应用层+数据库共同保证）
// 2. 软删除：删除只打标记，历史交易中的图书仍可追溯到分类
// 3. 仍有在售图书的分类不允许删除
type Genre struct {
	ID          uint
	Name        string // 分类名称（未删除分类中唯一）
	Description string // 分类描述
	BookCount   int64  // 在售图书数量（列表查询时填充，不落库）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGenre 创建新分类（工厂方法）
func NewGenre(name, description string) *Genre {
	now := time.Now()
	return &Genre{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新分类信息
// 空值表示不修改对应字段
func (g *Genre) UpdateInfo(name, description string) {
	if name != "" {
		g.Name = name
	}
	if description != "" {
		g.Description = description
	}
	g.UpdatedAt = time.Now()
}
