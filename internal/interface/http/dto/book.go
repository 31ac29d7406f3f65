package dto

// CreateBookRequest HTTP上架请求
// Price以最小货币单位传递（12500表示125.00）
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"The Pragmatic Programmer"`
	Author      string `json:"author" binding:"required,max=100" example:"Andrew Hunt"`
	Description string `json:"description" binding:"max=5000" example:"A classic on the craft of software"`
	Price       *int64 `json:"price" binding:"required,min=0" example:"12500"`
	Stock       *int   `json:"stock" binding:"required,min=0" example:"100"`
	GenreID     uint   `json:"genre_id" binding:"required" example:"1"`
}

// UpdateBookRequest HTTP更新图书请求
// Price/Stock省略表示不修改
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"required,max=100"`
	Description string `json:"description" binding:"max=5000"`
	Price       *int64 `json:"price" binding:"omitempty,min=0"`
	Stock       *int   `json:"stock" binding:"omitempty,min=0"`
	GenreID     uint   `json:"genre_id" binding:"required"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page         int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	Search       string `form:"search" binding:"omitempty,max=100" example:"pragmatic"`
	OrderByTitle string `form:"order_by_title" binding:"omitempty,oneof=asc desc" example:"asc"`
}
