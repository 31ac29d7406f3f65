package transaction

import (
	"context"
)

// Repository 交易仓储接口（依赖倒置原则）
// 设计说明：
// 1. 交易是append-only聚合：只有Create与查询，没有Update/Delete
// 2. Create必须在事务中调用（通过context传递事务）
// 3. 所有权过滤下沉到查询条件里（WHERE user_id = ?），
//    而不是查出来再鉴权，保证404语义不泄露存在性
type Repository interface {
	// Create 创建交易（包含交易明细）
	// 交易和明细必须在同一数据库事务中落库
	Create(ctx context.Context, t *Transaction) error

	// FindByIDAndUser 根据ID查找指定用户的交易（包含明细与图书身份信息）
	// 他人的交易ID返回ErrTransactionNotFound
	FindByIDAndUser(ctx context.Context, id, userID uint) (*Transaction, error)

	// ListByUser 查询用户的全部交易（按创建时间降序，包含明细与图书身份信息）
	ListByUser(ctx context.Context, userID uint) ([]*Transaction, error)

	// Stats 计算用户的消费统计
	Stats(ctx context.Context, userID uint) (*Stats, error)
}

// Stats 用户消费统计
// 金额保持最小货币单位，展示层负责换算为两位小数
type Stats struct {
	TotalTransactions int         // 交易总数
	TotalSpent        int64       // 消费总额（最小货币单位）
	MostPopular       []GenreStat // 购买最多的分类（按去重交易数降序，最多5个）
	LeastPopular      []GenreStat // 购买最少的分类（含零购买分类，按去重交易数升序，最多5个）
}

// GenreStat 单个分类的购买统计
type GenreStat struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	TransactionCount int    `json:"transaction_count"`           // 含该分类图书的去重交易数
	TotalBooksSold   int    `json:"total_books_sold,omitempty"` // 该分类图书的购买册数（仅最多榜）
}
