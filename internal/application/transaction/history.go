package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/pustaka/bookstore/internal/domain/transaction"
)

// HistoryUseCase 交易历史查询用例
// 设计说明：
// 1. 只能查到自己的交易：所有权过滤在SQL的WHERE里完成
// 2. 访问他人的交易统一返回404，不暴露交易的存在性
// 3. 明细中的图书读取时不过滤软删除，已下架图书的历史交易照常展示
type HistoryUseCase struct {
	txRepo transaction.Repository
}

// NewHistoryUseCase 创建交易历史用例
func NewHistoryUseCase(txRepo transaction.Repository) *HistoryUseCase {
	return &HistoryUseCase{txRepo: txRepo}
}

// TransactionInfo 对外展示的交易信息
type TransactionInfo struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	Total        int64      `json:"total"`
	TotalDisplay string     `json:"total_display"`
	Items        []ItemInfo `json:"items"`
	CreatedAt    string     `json:"created_at"`
}

// ItemInfo 交易明细行
type ItemInfo struct {
	ID       uint                 `json:"id"`
	BookID   uint                 `json:"book_id"`
	Quantity int                  `json:"quantity"`
	Price    int64                `json:"price"`
	Subtotal int64                `json:"subtotal"`
	Book     *transaction.BookRef `json:"book,omitempty"`
}

// List 查询用户的全部交易（按创建时间降序）
func (uc *HistoryUseCase) List(ctx context.Context, userID uint) ([]TransactionInfo, error) {
	txs, err := uc.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]TransactionInfo, len(txs))
	for i, t := range txs {
		infos[i] = newTransactionInfo(t)
	}
	return infos, nil
}

// Get 查询单笔交易
// 交易不存在或属于其他用户都返回ErrTransactionNotFound
func (uc *HistoryUseCase) Get(ctx context.Context, id, userID uint) (*TransactionInfo, error) {
	t, err := uc.txRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	info := newTransactionInfo(t)
	return &info, nil
}

func newTransactionInfo(t *transaction.Transaction) TransactionInfo {
	items := make([]ItemInfo, len(t.Items))
	for i, item := range t.Items {
		items[i] = ItemInfo{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
			Book:     item.Book,
		}
	}

	return TransactionInfo{
		ID:           t.ID,
		UserID:       t.UserID,
		Total:        t.Total,
		TotalDisplay: formatPrice(t.Total),
		Items:        items,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

// formatPrice 格式化价格（最小货币单位→两位小数展示值）
func formatPrice(price int64) string {
	return fmt.Sprintf("%.2f", float64(price)/100.0)
}
