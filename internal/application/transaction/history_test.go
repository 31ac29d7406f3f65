package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustaka/bookstore/internal/domain/transaction"
)

// seedTransaction 直接向仓储写入一笔历史交易
func seedTransaction(t *testing.T, repo *fakeTxRepo, userID uint, items []transaction.Item) *transaction.Transaction {
	t.Helper()
	tx := transaction.NewTransaction(userID, items)
	require.NoError(t, repo.Create(context.Background(), tx))
	return tx
}

func TestHistoryList(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTxRepo{}
	uc := NewHistoryUseCase(repo)

	seedTransaction(t, repo, 1, []transaction.Item{
		{BookID: 1, Quantity: 2, Price: 8900, Book: &transaction.BookRef{ID: 1, Title: "Clean Architecture", Author: "Robert Martin"}},
	})
	seedTransaction(t, repo, 1, []transaction.Item{
		{BookID: 2, Quantity: 1, Price: 12500},
	})
	seedTransaction(t, repo, 2, []transaction.Item{
		{BookID: 1, Quantity: 1, Price: 8900},
	})

	t.Run("只返回自己的交易_按创建时间降序", func(t *testing.T) {
		infos, err := uc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, infos, 2)

		// 最近的交易排在前面
		assert.Equal(t, int64(12500), infos[0].Total)
		assert.Equal(t, int64(17800), infos[1].Total)
		assert.Equal(t, "178.00", infos[1].TotalDisplay)

		// 明细携带图书身份信息与小计
		require.Len(t, infos[1].Items, 1)
		assert.Equal(t, int64(17800), infos[1].Items[0].Subtotal)
		require.NotNil(t, infos[1].Items[0].Book)
		assert.Equal(t, "Clean Architecture", infos[1].Items[0].Book.Title)

		// created_at为RFC3339格式
		_, err = time.Parse(time.RFC3339, infos[0].CreatedAt)
		assert.NoError(t, err)
	})

	t.Run("没有交易的用户返回空列表", func(t *testing.T) {
		infos, err := uc.List(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}

func TestHistoryGet(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTxRepo{}
	uc := NewHistoryUseCase(repo)

	tx := seedTransaction(t, repo, 1, []transaction.Item{
		{BookID: 1, Quantity: 3, Price: 4500},
	})

	t.Run("查询自己的交易", func(t *testing.T) {
		info, err := uc.Get(ctx, tx.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, info.ID)
		assert.Equal(t, int64(13500), info.Total)
		assert.Equal(t, "135.00", info.TotalDisplay)
	})

	t.Run("他人的交易返回404", func(t *testing.T) {
		// 统一返回"不存在"，不暴露他人交易的存在性
		_, err := uc.Get(ctx, tx.ID, 2)
		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)
	})

	t.Run("不存在的交易返回404", func(t *testing.T) {
		_, err := uc.Get(ctx, 999, 1)
		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)
	})
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("金额换算为两位小数", func(t *testing.T) {
		repo := &fakeTxRepo{}
		seedTransaction(t, repo, 1, []transaction.Item{
			{BookID: 1, Quantity: 2, Price: 8900},
		})
		seedTransaction(t, repo, 1, []transaction.Item{
			{BookID: 2, Quantity: 1, Price: 12550},
		})

		uc := NewStatisticsUseCase(repo)
		resp, err := uc.Execute(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.TotalTransactions)
		// 178.00 + 125.50 = 303.50
		assert.Equal(t, 303.50, resp.TotalSpent)
		// 303.50 / 2 = 151.75
		assert.Equal(t, 151.75, resp.AveragePerTransaction)
	})

	t.Run("平均值保留两位小数", func(t *testing.T) {
		repo := &fakeTxRepo{}
		for i := 0; i < 3; i++ {
			seedTransaction(t, repo, 1, []transaction.Item{
				{BookID: 1, Quantity: 1, Price: 10000},
			})
		}
		seedTransaction(t, repo, 1, []transaction.Item{
			{BookID: 2, Quantity: 1, Price: 5},
		})

		uc := NewStatisticsUseCase(repo)
		resp, err := uc.Execute(ctx, 1)
		require.NoError(t, err)

		// (300.00 + 0.05) / 4 = 75.0125 → 75.01
		assert.Equal(t, 75.01, resp.AveragePerTransaction)
	})

	t.Run("从未购买过的用户返回全零统计", func(t *testing.T) {
		uc := NewStatisticsUseCase(&fakeTxRepo{})
		resp, err := uc.Execute(ctx, 42)
		require.NoError(t, err)

		assert.Equal(t, 0, resp.TotalTransactions)
		assert.Equal(t, 0.0, resp.TotalSpent)
		// 除零保护：平均值直接为0
		assert.Equal(t, 0.0, resp.AveragePerTransaction)
	})

	t.Run("零购买分类进入最少榜", func(t *testing.T) {
		// 存储层从分类表LEFT JOIN聚合，从未买过的分类计数为0
		repo := &fakeTxRepo{
			leastPopular: []transaction.GenreStat{
				{ID: 7, Name: "Poetry", TransactionCount: 0},
				{ID: 3, Name: "History", TransactionCount: 1},
			},
		}

		uc := NewStatisticsUseCase(repo)
		resp, err := uc.Execute(ctx, 42)
		require.NoError(t, err)

		require.Len(t, resp.LeastPopularGenres, 2)
		assert.Equal(t, "Poetry", resp.LeastPopularGenres[0].Name)
		assert.Equal(t, 0, resp.LeastPopularGenres[0].TransactionCount)
	})
}
