package transaction

import (
	"net/http"

	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// 交易领域错误定义
var (
	// ErrTransactionNotFound 交易不存在（含访问他人交易的场景，统一404）
	ErrTransactionNotFound = apperrors.New(http.StatusNotFound, "Transaction not found")

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.New(http.StatusBadRequest, "At least one item is required")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(http.StatusBadRequest, "Quantity must be positive")
)

// NewInsufficientStockError 库存不足错误
// 错误信息带上书名和当前可用库存，方便客户端提示
func NewInsufficientStockError(title string, available int) *apperrors.AppError {
	return apperrors.Newf(http.StatusBadRequest,
		"Insufficient stock for book %q. Available: %d", title, available)
}
