package book

import (
	"context"
	"time"

	"github.com/pustaka/bookstore/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 支持分页、按标题/作者搜索、按分类过滤、书名排序
// 2. 列表项不返回description字段，减少数据传输量
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page         int    // 页码（从1开始）
	Limit        int    // 每页数量
	Search       string // 搜索关键词（匹配标题、作者）
	GenreID      uint   // 分类过滤（0表示不过滤）
	OrderByTitle string // 书名排序（asc | desc）
}

// BookListItem 列表项DTO（不含description）
type BookListItem struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Stock        int    `json:"stock"`
	GenreID      uint   `json:"genre_id"`
	GenreName    string `json:"genre_name,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
// 分页元信息由接口层包装进响应envelope的meta字段
type ListBooksResponse struct {
	List  []BookListItem
	Total int64
	Page  int
	Limit int
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	params := book.ListParams{
		Page:         req.Page,
		Limit:        req.Limit,
		Search:       req.Search,
		GenreID:      req.GenreID,
		OrderByTitle: req.OrderByTitle,
	}

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:           b.ID,
			Title:        b.Title,
			Author:       b.Author,
			Price:        b.Price,
			PriceDisplay: FormatPrice(b.Price),
			Stock:        b.Stock,
			GenreID:      b.GenreID,
			GenreName:    b.GenreName,
			CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		}
	}

	return &ListBooksResponse{
		List:  list,
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}
