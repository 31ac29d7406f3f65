package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 设计说明：
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB（避免全局变量）
// 3. 嵌套调用时GORM自动使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 设计说明：
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK，返回nil时自动COMMIT
// 3. 通过context.WithValue传递事务DB，Repository的getDB方法提取
//
// 使用示例（下单流程）：
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 校验购物车（同一事务内读取图书）
//	    // 2. 创建交易与明细
//	    if err := txRepo.Create(ctx, t); err != nil {
//	        return err // 自动回滚
//	    }
//	    // 3. 条件扣减库存
//	    return bookRepo.UpdateStock(ctx, bookID, -quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// txKey context中事务DB的键类型（非导出，避免跨包冲突）
type txKey struct{}

// getDB 从context获取事务DB，没有事务时返回默认DB
// 所有Repository共用这一事务传递机制
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
