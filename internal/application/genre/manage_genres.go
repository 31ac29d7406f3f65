package genre

import (
	"context"
	"time"

	"github.com/pustaka/bookstore/internal/domain/genre"
)

// ManageGenresUseCase 分类管理用例
// 设计说明：分类是简单CRUD聚合，增删改查编排逻辑很薄，
// 合并到一个用例结构里，避免四个只有一行的用例文件
type ManageGenresUseCase struct {
	genreService genre.Service
}

// NewManageGenresUseCase 创建分类管理用例
func NewManageGenresUseCase(genreService genre.Service) *ManageGenresUseCase {
	return &ManageGenresUseCase{genreService: genreService}
}

// GenreInfo 对外展示的分类信息
type GenreInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BookCount   int64  `json:"book_count,omitempty"` // 列表接口填充
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SaveGenreRequest 创建/更新分类请求
type SaveGenreRequest struct {
	Name        string
	Description string
}

// Create 创建分类
func (uc *ManageGenresUseCase) Create(ctx context.Context, req SaveGenreRequest) (*GenreInfo, error) {
	g, err := uc.genreService.CreateGenre(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	info := newGenreInfo(g)
	return &info, nil
}

// Get 根据ID获取分类
func (uc *ManageGenresUseCase) Get(ctx context.Context, id uint) (*GenreInfo, error) {
	g, err := uc.genreService.GetGenreByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := newGenreInfo(g)
	return &info, nil
}

// List 查询全部分类
func (uc *ManageGenresUseCase) List(ctx context.Context) ([]GenreInfo, error) {
	genres, err := uc.genreService.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]GenreInfo, len(genres))
	for i, g := range genres {
		infos[i] = newGenreInfo(g)
	}
	return infos, nil
}

// Update 更新分类信息
func (uc *ManageGenresUseCase) Update(ctx context.Context, id uint, req SaveGenreRequest) (*GenreInfo, error) {
	g, err := uc.genreService.UpdateGenre(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	info := newGenreInfo(g)
	return &info, nil
}

// Delete 删除分类
// 分类下仍有未删除图书时领域服务会拒绝
func (uc *ManageGenresUseCase) Delete(ctx context.Context, id uint) error {
	return uc.genreService.DeleteGenre(ctx, id)
}

func newGenreInfo(g *genre.Genre) GenreInfo {
	return GenreInfo{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		BookCount:   g.BookCount,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}
