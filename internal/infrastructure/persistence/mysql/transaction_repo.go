package mysql

import (
	"context"
	"errors"
	"math"
	"net/http"

	"gorm.io/gorm"

	"github.com/pustaka/bookstore/internal/domain/transaction"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// transactionRepository 交易仓储实现(MySQL)
// 设计说明:
// 1. Transaction和TransactionItem是聚合关系，必须一起保存
// 2. 查询时使用Preload预加载明细与图书身份信息，避免N+1问题
// 3. 所有权过滤下沉到WHERE条件，越权访问与不存在同样返回404
// 4. 统计聚合使用原生SQL（GORM的链式API表达不了多表分组+外连接）
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓储
func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &transactionRepository{db: db}
}

// Create 创建交易
// 设计说明:
// 1. GORM通过foreignKey自动级联保存Items
// 2. 必须在事务中调用(通过getDB从context获取事务DB)
func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	model := toTransactionModel(t)

	db := getDB(ctx, r.db)
	// Omit("Items.Book")：明细中的Book仅用于展示，不随交易写入
	if err := db.Omit("Items.Book").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "Failed to create transaction")
	}

	// 回填自增ID
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	for i := range t.Items {
		t.Items[i].ID = model.Items[i].ID
		t.Items[i].TransactionID = model.ID
	}

	return nil
}

// FindByIDAndUser 根据ID查找指定用户的交易
// 他人的交易在WHERE条件中被过滤掉，与不存在无法区分
func (r *transactionRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*transaction.Transaction, error) {
	var model TransactionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Book", func(db *gorm.DB) *gorm.DB {
			// 软删除的图书仍要在历史交易中展示
			return db.Unscoped()
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query transaction")
	}

	return toTransactionEntity(&model), nil
}

// ListByUser 查询用户的全部交易（按创建时间降序）
func (r *transactionRepository) ListByUser(ctx context.Context, userID uint) ([]*transaction.Transaction, error) {
	var models []TransactionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Book", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to query transactions")
	}

	transactions := make([]*transaction.Transaction, len(models))
	for i := range models {
		transactions[i] = toTransactionEntity(&models[i])
	}

	return transactions, nil
}

// Stats 计算用户的消费统计
// 设计说明:
// 1. 交易数与消费总额一次聚合查询
// 2. 最多榜：内连接，只统计用户实际购买过的分类
// 3. 最少榜：从genres表出发LEFT JOIN，零购买的分类计数为0也会入榜
//    （这一不对称是有意保留的原有行为）
// 4. COUNT(DISTINCT t.id)只统计该用户的交易；聚合计数以int64接收，
//    转换为int前做范围检查（见toInt）
func (r *transactionRepository) Stats(ctx context.Context, userID uint) (*transaction.Stats, error) {
	db := r.db.WithContext(ctx)

	// 1. 交易总数与消费总额
	var summary struct {
		Count int64
		Total int64
	}
	err := db.Raw(`
		SELECT COUNT(*) AS count, COALESCE(SUM(total), 0) AS total
		FROM transactions
		WHERE user_id = ?`, userID).Scan(&summary).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to aggregate transactions")
	}

	// 2. 购买最多的分类（按去重交易数降序，附带购买册数）
	type genreRow struct {
		ID               uint
		Name             string
		TransactionCount int64
		TotalBooksSold   int64
	}
	var mostRows []genreRow
	err = db.Raw(`
		SELECT g.id, g.name,
		       COUNT(DISTINCT ti.transaction_id) AS transaction_count,
		       COALESCE(SUM(ti.quantity), 0) AS total_books_sold
		FROM genres g
		JOIN books b ON b.genre_id = g.id
		JOIN transaction_items ti ON ti.book_id = b.id
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.user_id = ? AND g.deleted_at IS NULL
		GROUP BY g.id, g.name
		ORDER BY transaction_count DESC
		LIMIT 5`, userID).Scan(&mostRows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to aggregate most purchased genres")
	}

	// 3. 购买最少的分类（含零购买分类，按去重交易数升序）
	// LEFT JOIN链从genres出发，没有任何购买记录的分类计数为0
	var leastRows []genreRow
	err = db.Raw(`
		SELECT g.id, g.name,
		       COUNT(DISTINCT t.id) AS transaction_count
		FROM genres g
		LEFT JOIN books b ON b.genre_id = g.id
		LEFT JOIN transaction_items ti ON ti.book_id = b.id
		LEFT JOIN transactions t ON t.id = ti.transaction_id AND t.user_id = ?
		WHERE g.deleted_at IS NULL
		GROUP BY g.id, g.name
		ORDER BY transaction_count ASC
		LIMIT 5`, userID).Scan(&leastRows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to aggregate least purchased genres")
	}

	// 4. 组装统计结果，聚合计数安全收窄
	stats := &transaction.Stats{
		TotalSpent:   summary.Total,
		MostPopular:  make([]transaction.GenreStat, len(mostRows)),
		LeastPopular: make([]transaction.GenreStat, len(leastRows)),
	}

	count, err := toInt(summary.Count)
	if err != nil {
		return nil, err
	}
	stats.TotalTransactions = count

	for i, row := range mostRows {
		txCount, err := toInt(row.TransactionCount)
		if err != nil {
			return nil, err
		}
		sold, err := toInt(row.TotalBooksSold)
		if err != nil {
			return nil, err
		}
		stats.MostPopular[i] = transaction.GenreStat{
			ID:               row.ID,
			Name:             row.Name,
			TransactionCount: txCount,
			TotalBooksSold:   sold,
		}
	}

	for i, row := range leastRows {
		txCount, err := toInt(row.TransactionCount)
		if err != nil {
			return nil, err
		}
		stats.LeastPopular[i] = transaction.GenreStat{
			ID:               row.ID,
			Name:             row.Name,
			TransactionCount: txCount,
		}
	}

	return stats, nil
}

// toInt 聚合计数收窄
// 数据库聚合返回宽整数类型，收窄前确认数值在int安全范围内，
// 避免平台差异下的静默截断（实际业务量远达不到，仅作兜底）
func toInt(v int64) (int, error) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, apperrors.Newf(http.StatusInternalServerError, "Aggregate count %d out of int range", v)
	}
	return int(v), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toTransactionModel 领域实体 → GORM模型
func toTransactionModel(t *transaction.Transaction) *TransactionModel {
	items := make([]TransactionItemModel, len(t.Items))
	for i, item := range t.Items {
		items[i] = TransactionItemModel{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			Price:         item.Price,
		}
	}

	return &TransactionModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Total:     t.Total,
		Items:     items,
		CreatedAt: t.CreatedAt,
	}
}

// toTransactionEntity GORM模型 → 领域实体
func toTransactionEntity(model *TransactionModel) *transaction.Transaction {
	items := make([]transaction.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = transaction.Item{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			Price:         item.Price,
			Book: &transaction.BookRef{
				ID:     item.Book.ID,
				Title:  item.Book.Title,
				Author: item.Book.Author,
			},
		}
	}

	return &transaction.Transaction{
		ID:        model.ID,
		UserID:    model.UserID,
		Total:     model.Total,
		Items:     items,
		CreatedAt: model.CreatedAt,
	}
}
