package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustaka/bookstore/internal/domain/book"
)

// fakeBookService 记录收到的查询参数
type fakeBookService struct {
	lastParams book.ListParams
	books      []*book.Book
	total      int64
}

func (s *fakeBookService) CreateBook(ctx context.Context, title, author, description string, price int64, stock int, genreID uint) (*book.Book, error) {
	return nil, nil
}

func (s *fakeBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) UpdateBook(ctx context.Context, id uint, title, author, description string, price *int64, stock *int, genreID uint) (*book.Book, error) {
	return nil, nil
}

func (s *fakeBookService) DeleteBook(ctx context.Context, id uint) error { return nil }

func (s *fakeBookService) ListBooks(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	s.lastParams = params
	return s.books, s.total, nil
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("分页参数默认值", func(t *testing.T) {
		svc := &fakeBookService{}
		uc := NewListBooksUseCase(svc)

		resp, err := uc.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 10, resp.Limit)
		assert.Equal(t, 1, svc.lastParams.Page)
		assert.Equal(t, 10, svc.lastParams.Limit)
	})

	t.Run("每页数量上限100", func(t *testing.T) {
		svc := &fakeBookService{}
		uc := NewListBooksUseCase(svc)

		resp, err := uc.Execute(ctx, ListBooksRequest{Page: 2, Limit: 500})
		require.NoError(t, err)

		assert.Equal(t, 100, resp.Limit)
		assert.Equal(t, 100, svc.lastParams.Limit)
	})

	t.Run("列表项包含展示价格", func(t *testing.T) {
		svc := &fakeBookService{
			books: []*book.Book{
				{
					ID:        1,
					Title:     "Clean Code",
					Author:    "Robert Martin",
					Price:     8950,
					Stock:     10,
					GenreID:   1,
					GenreName: "Programming",
					CreatedAt: time.Now(),
				},
			},
			total: 1,
		}
		uc := NewListBooksUseCase(svc)

		resp, err := uc.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)
		require.Len(t, resp.List, 1)

		assert.Equal(t, int64(8950), resp.List[0].Price)
		assert.Equal(t, "89.50", resp.List[0].PriceDisplay)
		assert.Equal(t, "Programming", resp.List[0].GenreName)
		assert.Equal(t, int64(1), resp.Total)
	})

	t.Run("过滤参数透传", func(t *testing.T) {
		svc := &fakeBookService{}
		uc := NewListBooksUseCase(svc)

		_, err := uc.Execute(ctx, ListBooksRequest{
			Search:       "martin",
			GenreID:      3,
			OrderByTitle: "asc",
		})
		require.NoError(t, err)

		assert.Equal(t, "martin", svc.lastParams.Search)
		assert.Equal(t, uint(3), svc.lastParams.GenreID)
		assert.Equal(t, "asc", svc.lastParams.OrderByTitle)
	})
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{8900, "89.00"},
		{8950, "89.50"},
		{123456, "1234.56"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.price), "price=%d", tc.price)
	}
}
