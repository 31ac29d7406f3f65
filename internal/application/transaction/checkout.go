package transaction

import (
	"context"
	"log"
	"time"

	"github.com/pustaka/bookstore/internal/domain/book"
	"github.com/pustaka/bookstore/internal/domain/transaction"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
	"github.com/pustaka/bookstore/pkg/metrics"
	"github.com/pustaka/bookstore/pkg/tracing"
)

// TxManager 事务管理接口
// 设计说明：应用层只依赖接口，单元测试可以注入直通实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事件发布接口（RabbitMQ实现）
// nil表示未启用消息队列
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// CheckoutUseCase 结账用例
// 教学要点：这是整个项目最核心的用例
// 涉及：购物车校验、价格快照、事务原子性、防超卖
type CheckoutUseCase struct {
	txRepo    transaction.Repository
	bookRepo  book.Repository
	txManager TxManager
	publisher EventPublisher
}

// NewCheckoutUseCase 创建结账用例
func NewCheckoutUseCase(
	txRepo transaction.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRepo:    txRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// CheckoutRequest 结账请求DTO
type CheckoutRequest struct {
	UserID uint           // 买家用户ID（从JWT中提取）
	Items  []CheckoutItem // 购物车明细
}

// CheckoutItem 购物车明细项
type CheckoutItem struct {
	BookID   uint
	Quantity int
}

// CheckoutResponse 结账响应DTO
type CheckoutResponse struct {
	ID           uint           `json:"id"`
	UserID       uint           `json:"user_id"`
	Total        int64          `json:"total"`
	TotalDisplay string         `json:"total_display"`
	Items        []CheckoutLine `json:"items"`
	CreatedAt    string         `json:"created_at"`
}

// CheckoutLine 结账响应中的明细行
type CheckoutLine struct {
	ID       uint                `json:"id"`
	BookID   uint                `json:"book_id"`
	Quantity int                 `json:"quantity"`
	Price    int64               `json:"price"`    // 下单时刻的单价快照
	Subtotal int64               `json:"subtotal"` // price * quantity
	Book     transaction.BookRef `json:"book"`
}

// TransactionCreatedEvent 交易创建事件（发布到消息队列）
type TransactionCreatedEvent struct {
	TransactionID uint  `json:"transaction_id"`
	UserID        uint  `json:"user_id"`
	Total         int64 `json:"total"`
	ItemCount     int   `json:"item_count"`
	CreatedAt     int64 `json:"created_at"`
}

// Execute 执行结账
// 教学重点：防超卖的完整流程
//
// 核心问题：库存超卖
// 场景：图书库存10本，100人同时下单
// 错误实现：
//  1. 查询库存 → 10本
//  2. 判断够不够 → 够
//  3. 扣减库存 → stock = stock - 1
//     结果：100个请求都通过了步骤2，最后卖出100本（超卖90本！）
//
// 正确实现：条件原子扣减
//
//	UPDATE books SET stock = stock - ? WHERE id = ? AND stock - ? >= 0
//
// 由数据库在行锁内完成"判断+扣减"，检查affected rows判定成败，
// 不存在"先读后写"的时间窗口
//
// 完整流程：
//  1. 校验购物车（非空、数量为正、同一图书的重复条目按合并后的总量校验）
//  2. 批量查询图书，缺失任何一本返回404
//  3. 读时校验库存并快照单价，计算合计金额
//  4. 事务内：落库交易与明细 → 条件扣减每本书的库存
//     扣减失败（并发把库存抢光）→ 整个事务回滚，返回通用持久化错误
//  5. 提交后发布transaction.created事件（失败只记日志）
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "bookstore", "checkout")
	defer span.End()

	start := time.Now()

	// ========================================
	// 步骤1：购物车校验
	// ========================================
	if len(req.Items) == 0 {
		metrics.RecordCheckout("invalid", 0)
		return nil, transaction.ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			metrics.RecordCheckout("invalid", 0)
			return nil, transaction.ErrInvalidQuantity
		}
	}

	// 同一图书的重复条目先合并再校验
	// 否则两条各3本的条目能绕过5本库存的检查（各查各的都"够"）
	merged := mergeItems(req.Items)

	// ========================================
	// 步骤2：批量解析图书
	// ========================================
	ids := make([]uint, len(merged))
	for i, item := range merged {
		ids[i] = item.BookID
	}

	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		metrics.RecordCheckout("error", 0)
		return nil, err
	}
	if len(books) != len(ids) {
		metrics.RecordCheckout("not_found", 0)
		return nil, book.ErrBooksNotFound
	}

	bookMap := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		bookMap[b.ID] = b
	}

	// ========================================
	// 步骤3：读时库存校验 + 价格快照
	// ========================================
	// 教学要点：使用"数据库中的当前价格"而非前端传递的价格
	// 防止改价攻击：用户在前端修改价格提交
	items := make([]transaction.Item, len(merged))
	for i, item := range merged {
		b := bookMap[item.BookID]
		if b.Stock < item.Quantity {
			metrics.RecordCheckout("insufficient_stock", 0)
			return nil, transaction.NewInsufficientStockError(b.Title, b.Stock)
		}
		items[i] = transaction.Item{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    b.Price, // 单价快照
		}
	}

	newTx := transaction.NewTransaction(req.UserID, items)

	// ========================================
	// 步骤4：事务内落库 + 条件扣减库存
	// ========================================
	// 教学要点：读时校验通过后库存仍可能被并发请求抢走，
	// 写时的条件扣减是防超卖的最终保障；扣减失败则整个事务
	// 回滚（交易不落库、已扣的库存恢复），对外表现为持久化失败
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.txRepo.Create(txCtx, newTx); err != nil {
			return err
		}

		for _, item := range newTx.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return apperrors.Wrap(err, "Failed to process transaction")
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordCheckout("error", 0)
		return nil, err
	}

	metrics.RecordCheckout("success", newTx.Total)
	metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())

	// ========================================
	// 步骤5：发布交易创建事件（尽力而为）
	// ========================================
	uc.publishCreated(newTx)

	return uc.buildResponse(newTx, bookMap), nil
}

// mergeItems 合并同一图书的重复条目（保持首次出现的顺序）
func mergeItems(items []CheckoutItem) []CheckoutItem {
	index := make(map[uint]int, len(items))
	merged := make([]CheckoutItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.BookID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.BookID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// publishCreated 发布交易创建事件
// 消息队列不可用不影响结账结果
func (uc *CheckoutUseCase) publishCreated(t *transaction.Transaction) {
	if uc.publisher == nil {
		return
	}

	event := TransactionCreatedEvent{
		TransactionID: t.ID,
		UserID:        t.UserID,
		Total:         t.Total,
		ItemCount:     len(t.Items),
		CreatedAt:     t.CreatedAt.Unix(),
	}
	if err := uc.publisher.Publish("transaction.created", event); err != nil {
		log.Printf("failed to publish transaction.created event for tx %d: %v", t.ID, err)
	}
}

func (uc *CheckoutUseCase) buildResponse(t *transaction.Transaction, bookMap map[uint]*book.Book) *CheckoutResponse {
	lines := make([]CheckoutLine, len(t.Items))
	for i, item := range t.Items {
		b := bookMap[item.BookID]
		lines[i] = CheckoutLine{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
			Book: transaction.BookRef{
				ID:     b.ID,
				Title:  b.Title,
				Author: b.Author,
			},
		}
	}

	return &CheckoutResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		Total:        t.Total,
		TotalDisplay: formatPrice(t.Total),
		Items:        lines,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
