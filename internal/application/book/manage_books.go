package book

import (
	"context"
	"fmt"
	"time"

	"github.com/pustaka/bookstore/internal/domain/book"
)

// ManageBooksUseCase 图书管理用例（创建/更新/删除/详情）
// 设计说明：图书写路径是普通CRUD，业务规则（书名唯一、
// 分类必须存在、价格库存非负）集中在领域服务
type ManageBooksUseCase struct {
	bookService book.Service
}

// NewManageBooksUseCase 创建图书管理用例
func NewManageBooksUseCase(bookService book.Service) *ManageBooksUseCase {
	return &ManageBooksUseCase{bookService: bookService}
}

// SaveBookRequest 创建/更新图书请求
// Price/Stock为nil表示更新时不修改该字段
type SaveBookRequest struct {
	Title       string
	Author      string
	Description string
	Price       *int64
	Stock       *int
	GenreID     uint
}

// BookInfo 对外展示的图书信息
type BookInfo struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`         // 价格（最小货币单位）
	PriceDisplay string `json:"price_display"` // 价格（两位小数展示值）
	Stock        int    `json:"stock"`
	GenreID      uint   `json:"genre_id"`
	GenreName    string `json:"genre_name,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Create 创建图书（上架）
func (uc *ManageBooksUseCase) Create(ctx context.Context, req SaveBookRequest) (*BookInfo, error) {
	var (
		price int64
		stock int
	)
	if req.Price != nil {
		price = *req.Price
	}
	if req.Stock != nil {
		stock = *req.Stock
	}

	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.Description, price, stock, req.GenreID)
	if err != nil {
		return nil, err
	}

	info := newBookInfo(b)
	return &info, nil
}

// Get 根据ID获取图书详情
func (uc *ManageBooksUseCase) Get(ctx context.Context, id uint) (*BookInfo, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := newBookInfo(b)
	return &info, nil
}

// Update 更新图书信息
func (uc *ManageBooksUseCase) Update(ctx context.Context, id uint, req SaveBookRequest) (*BookInfo, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, req.Title, req.Author, req.Description, req.Price, req.Stock, req.GenreID)
	if err != nil {
		return nil, err
	}

	info := newBookInfo(b)
	return &info, nil
}

// Delete 删除图书（软删除，历史交易仍可引用）
func (uc *ManageBooksUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}

func newBookInfo(b *book.Book) BookInfo {
	return BookInfo{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		Price:        b.Price,
		PriceDisplay: FormatPrice(b.Price),
		Stock:        b.Stock,
		GenreID:      b.GenreID,
		GenreName:    b.GenreName,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}

// FormatPrice 格式化价格（最小货币单位→两位小数展示值）
func FormatPrice(price int64) string {
	return fmt.Sprintf("%.2f", float64(price)/100.0)
}
