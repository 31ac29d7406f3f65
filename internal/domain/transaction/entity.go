package transaction

import (
	"time"
)

// Transaction 购买交易实体（聚合根）
// 设计说明：
// 1. 交易创建后不可变（append-only）：没有状态机，没有更新入口
// 2. Total冗余存储创建时刻的合计金额，之后永不重算
//    不变量：Total == Σ(Item.Price * Item.Quantity)
// 3. UserID是不可变的归属引用，鉴权以此为准
type Transaction struct {
	ID        uint
	UserID    uint   // 买家用户ID
	Total     int64  // 合计金额（最小货币单位），创建时计算
	Items     []Item // 交易明细（聚合内的子实体）
	CreatedAt time.Time
}

// Item 交易明细项
// 设计说明：
// 1. 不是独立聚合根，必须通过Transaction访问
// 2. Price是下单时刻的单价快照，与图书当前价格解耦，
//    商家改价后历史交易金额保持不变
// 3. Book只携带展示所需的最小身份信息
type Item struct {
	ID            uint
	TransactionID uint     // 所属交易ID
	BookID        uint     // 图书ID
	Quantity      int      // 购买数量（正整数）
	Price         int64    // 价格快照（最小货币单位）
	Book          *BookRef // 图书身份信息（查询时填充）
}

// BookRef 交易明细中嵌入的图书最小身份信息
type BookRef struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Subtotal 明细小计
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewTransaction 创建新交易（工厂方法）
// Total由明细计算得出，绝不接受外部传入的金额
func NewTransaction(userID uint, items []Item) *Transaction {
	t := &Transaction{
		UserID:    userID,
		Items:     items,
		CreatedAt: time.Now(),
	}
	t.Total = t.CalculateTotal()
	return t
}

// CalculateTotal 根据明细计算合计金额
// 创建交易时调用一次，之后Total不再重算
func (t *Transaction) CalculateTotal() int64 {
	var total int64
	for _, item := range t.Items {
		total += item.Subtotal()
	}
	return total
}

// IsOwnedBy 检查交易是否属于指定用户
// 越权访问统一返回"不存在"，避免暴露他人交易的存在性
func (t *Transaction) IsOwnedBy(userID uint) bool {
	return t.UserID == userID
}
