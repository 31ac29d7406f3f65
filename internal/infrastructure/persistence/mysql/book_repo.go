package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pustaka/bookstore/internal/domain/book"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如书名重复)，转换为业务错误
// 4. FindByIDs与UpdateStock参与下单事务(通过context传递事务DB)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		GenreID:     b.GenreID,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// 书名唯一索引冲突
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "Failed to create book")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书（附带分类名称）
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Preload("Genre").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query book")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书
// 下单校验时一次性解析整个购物车，只返回未删除的命中记录
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	var models []BookModel
	db := getDB(ctx, r.db)
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to query books")
	}

	books := make([]*book.Book, len(models))
	for i, model := range models {
		books[i] = toBookEntity(&model)
	}
	return books, nil
}

// FindByTitle 根据书名查找图书
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query book")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := r.db.WithContext(ctx).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"title":       b.Title,
		"author":      b.Author,
		"description": b.Description,
		"price":       b.Price,
		"stock":       b.Stock,
		"genre_id":    b.GenreID,
		"updated_at":  b.UpdatedAt,
	})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(result.Error, "Failed to update book")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Delete 删除图书(软删除)
// 历史交易明细仍引用该图书，物理行保留
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete book")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{})

	// 关键词搜索(匹配标题、作者)
	if params.Search != "" {
		keyword := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	// 分类过滤
	if params.GenreID != 0 {
		query = query.Where("genre_id = ?", params.GenreID)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to count books")
	}

	// 排序：书名排序优先，默认按创建时间降序
	switch params.OrderByTitle {
	case "asc":
		query = query.Order("title ASC")
	case "desc":
		query = query.Order("title DESC")
	default:
		query = query.Order("created_at DESC")
	}

	// 分页
	offset := (params.Page - 1) * params.Limit
	query = query.Limit(params.Limit).Offset(offset)

	if err := query.Preload("Genre").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to query books")
	}

	books := make([]*book.Book, len(models))
	for i, model := range models {
		books[i] = toBookEntity(&model)
	}

	return books, total, nil
}

// UpdateStock 调整库存(条件原子操作)
// 防超卖的唯一保障：
//
//	UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
//
// 条件由存储层在行锁内评估，两个并发扣减不可能同时越过stock >= 0，
// 不存在"先读后写"式的丢失更新窗口
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update stock")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在，或者库存不足，再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "Failed to query book")
		}
		// 图书存在，说明是库存不足
		return book.ErrInsufficientStock
	}

	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		GenreID:     model.GenreID,
		GenreName:   model.Genre.Name,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
