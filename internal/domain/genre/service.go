package genre

import (
	"context"
)

// Service 分类领域服务
// 业务规则集中在这里，Handler和UseCase不直接操作Repository
type Service interface {
	// CreateGenre 创建分类
	// 业务规则：名称在未删除的分类中唯一
	CreateGenre(ctx context.Context, name, description string) (*Genre, error)

	// GetGenreByID 根据ID获取分类
	GetGenreByID(ctx context.Context, id uint) (*Genre, error)

	// ListGenres 查询全部分类
	ListGenres(ctx context.Context) ([]*Genre, error)

	// UpdateGenre 更新分类信息
	// 业务规则：改名时新名称不能与其他未删除分类冲突
	UpdateGenre(ctx context.Context, id uint, name, description string) (*Genre, error)

	// DeleteGenre 删除分类（软删除）
	// 业务规则：分类下仍有未删除图书时不允许删除
	DeleteGenre(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建分类服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateGenre 创建分类
func (s *service) CreateGenre(ctx context.Context, name, description string) (*Genre, error) {
	// 名称唯一性校验
	// 软删除后名称可复用，数据库只建普通索引，唯一性由这里保证
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, ErrNameDuplicate
	} else if err != ErrGenreNotFound {
		return nil, err
	}

	g := NewGenre(name, description)
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGenreByID 根据ID获取分类
func (s *service) GetGenreByID(ctx context.Context, id uint) (*Genre, error) {
	return s.repo.FindByID(ctx, id)
}

// ListGenres 查询全部分类
func (s *service) ListGenres(ctx context.Context) ([]*Genre, error) {
	return s.repo.List(ctx)
}

// UpdateGenre 更新分类信息
func (s *service) UpdateGenre(ctx context.Context, id uint, name, description string) (*Genre, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 改名时检查新名称是否与其他分类冲突
	if name != "" && name != g.Name {
		existing, err := s.repo.FindByName(ctx, name)
		if err == nil && existing.ID != id {
			return nil, ErrNameDuplicate
		}
		if err != nil && err != ErrGenreNotFound {
			return nil, err
		}
	}

	g.UpdateInfo(name, description)
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGenre 删除分类（软删除）
func (s *service) DeleteGenre(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// 分类下仍有图书时不允许删除
	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGenreHasBooks
	}

	return s.repo.Delete(ctx, id)
}
