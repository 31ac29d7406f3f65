package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pustaka/bookstore/internal/domain/genre"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// genreRepository 分类仓储实现(MySQL)
// GORM的软删除作用域自动过滤deleted_at非空的记录
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

// Create 创建分类
func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{
		Name:        g.Name,
		Description: g.Description,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "Failed to create genre")
	}

	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找分类
func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query genre")
	}

	return toGenreEntity(&model), nil
}

// FindByName 根据名称查找分类
// 只在未删除的分类中匹配（软删除后名称可复用）
func (r *genreRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query genre")
	}

	return toGenreEntity(&model), nil
}

// List 查询全部分类（按创建时间降序）
// 附带每个分类的在售图书数量，一次分组查询避免N+1
func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var models []GenreModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to query genres")
	}

	// 分组统计各分类的在售图书数量
	type genreCount struct {
		GenreID uint
		Count   int64
	}
	var counts []genreCount
	err = r.db.WithContext(ctx).Model(&BookModel{}).
		Select("genre_id, COUNT(*) AS count").
		Group("genre_id").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to count books per genre")
	}

	countMap := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countMap[c.GenreID] = c.Count
	}

	genres := make([]*genre.Genre, len(models))
	for i, model := range models {
		g := toGenreEntity(&model)
		g.BookCount = countMap[model.ID]
		genres[i] = g
	}

	return genres, nil
}

// Update 更新分类信息
func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	result := r.db.WithContext(ctx).Model(&GenreModel{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"name":        g.Name,
		"description": g.Description,
		"updated_at":  g.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update genre")
	}

	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}

	return nil
}

// Delete 删除分类(软删除)
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&GenreModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete genre")
	}

	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}

	return nil
}

// CountBooks 统计分类下未删除的图书数量
// 删除分类前的前置检查使用
func (r *genreRepository) CountBooks(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("genre_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to count books")
	}
	return count, nil
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(model *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
