package book

import (
	"net/http"

	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在（或已被软删除）
	ErrBookNotFound = apperrors.New(http.StatusNotFound, "Book not found")

	// ErrBooksNotFound 批量查询时部分图书不存在
	ErrBooksNotFound = apperrors.New(http.StatusNotFound, "Some books not found")

	// ErrTitleDuplicate 书名已存在
	// 原有约定：书名冲突返回400而非409
	ErrTitleDuplicate = apperrors.New(http.StatusBadRequest, "Book title already exists")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(http.StatusBadRequest, "Price must not be negative")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(http.StatusBadRequest, "Stock must not be negative")

	// ErrInsufficientStock 库存不足（写入时的兜底校验，校验阶段的错误会带上书名和可用库存）
	ErrInsufficientStock = apperrors.New(http.StatusBadRequest, "Insufficient stock")
)
