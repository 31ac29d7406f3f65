package book

import (
	"context"

	"github.com/pustaka/bookstore/internal/domain/genre"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 领域服务封装跨实体的业务规则校验（如图书必须归属有效分类）
// 2. 不依赖具体的Repository实现（依赖倒置）
type Service interface {
	// CreateBook 创建图书（上架）
	// 业务规则：
	// - 书名不能重复
	// - 价格、库存不能为负数
	// - 分类必须存在且未删除
	CreateBook(ctx context.Context, title, author, description string, price int64, stock int, genreID uint) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息（含价格与库存）
	// price/stock为nil表示不修改
	UpdateBook(ctx context.Context, id uint, title, author, description string, price *int64, stock *int, genreID uint) (*Book, error)

	// DeleteBook 删除图书（软删除）
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

type service struct {
	repo      Repository
	genreRepo genre.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, genreRepo genre.Repository) Service {
	return &service{repo: repo, genreRepo: genreRepo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author, description string, price int64, stock int, genreID uint) (*Book, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 书名唯一性校验（数据库唯一索引兜底）
	if _, err := s.repo.FindByTitle(ctx, title); err == nil {
		return nil, ErrTitleDuplicate
	} else if err != ErrBookNotFound {
		return nil, err
	}

	// 分类必须存在且未删除
	if _, err := s.genreRepo.FindByID(ctx, genreID); err != nil {
		return nil, err
	}

	b := NewBook(title, author, description, price, stock, genreID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书详情
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author, description string, price *int64, stock *int, genreID uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 改名时检查新书名是否与其他图书冲突
	if title != "" && title != b.Title {
		existing, err := s.repo.FindByTitle(ctx, title)
		if err == nil && existing.ID != id {
			return nil, ErrTitleDuplicate
		}
		if err != nil && err != ErrBookNotFound {
			return nil, err
		}
	}

	// 换分类时校验目标分类
	if genreID != 0 && genreID != b.GenreID {
		if _, err := s.genreRepo.FindByID(ctx, genreID); err != nil {
			return nil, err
		}
		b.GenreID = genreID
	}

	b.UpdateInfo(title, author, description)
	if price != nil {
		if err := b.UpdatePrice(*price); err != nil {
			return nil, err
		}
	}
	if stock != nil {
		if err := b.UpdateStock(*stock); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书（软删除）
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	// 按分类过滤时先校验分类存在，保持与单查一致的404语义
	if params.GenreID != 0 {
		if _, err := s.genreRepo.FindByID(ctx, params.GenreID); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, params)
}
