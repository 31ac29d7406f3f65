package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：交易模块集成测试
//
// 交易模块是本项目的核心，包含以下关键技术点：
// 1. 数据库事务（交易与明细原子落库）
// 2. 条件原子扣减防超卖
// 3. 价格快照（改价不影响历史交易）
// 4. 所有权隔离（只能查自己的交易，他人的统一404）
//
// 这个测试文件验证了这些核心功能的正确性

// checkout 发起一次结账请求
func checkout(t *testing.T, token string, items []map[string]interface{}) *Response {
	t.Helper()
	return PostJSON(t, BaseURL+"/transactions", map[string]interface{}{"items": items}, token)
}

// getBookStock 查询图书当前库存
func getBookStock(t *testing.T, bookID uint) int {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
	require.True(t, resp.Success, "查询图书失败: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Stock
}

// TestTransactionCheckout 测试结账功能
func TestTransactionCheckout(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "buyer")
	genreID := CreateTestGenre(t, token)

	t.Run("正常结账", func(t *testing.T) {
		bookID := PublishTestBook(t, token, 8900, 10, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID, "quantity": 3},
		})

		require.True(t, resp.Success, "结账失败: %s", resp.Message)
		assert.Equal(t, "Transaction created successfully", resp.Message)

		var data TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		// 89.00 * 3 = 267.00
		assert.Equal(t, int64(26700), data.Total)
		assert.Equal(t, "267.00", data.TotalDisplay)
		require.Len(t, data.Items, 1)
		assert.Equal(t, int64(8900), data.Items[0].Price)
		assert.Equal(t, int64(26700), data.Items[0].Subtotal)

		// 库存同步扣减
		assert.Equal(t, 7, getBookStock(t, bookID))

		t.Logf("✓ 结账成功: id=%d total=%s", data.ID, data.TotalDisplay)
	})

	t.Run("多图书结账", func(t *testing.T) {
		bookID1 := PublishTestBook(t, token, 8900, 10, genreID)
		bookID2 := PublishTestBook(t, token, 12500, 5, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID1, "quantity": 2},
			{"book_id": bookID2, "quantity": 1},
		})

		require.True(t, resp.Success, "结账失败: %s", resp.Message)

		var data TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		// 89.00*2 + 125.00 = 303.00
		assert.Equal(t, int64(30300), data.Total)
		require.Len(t, data.Items, 2)
	})

	t.Run("重复条目按合并后的总量校验", func(t *testing.T) {
		// 库存5本，两个条目各3本：合并后6本超出库存
		bookID := PublishTestBook(t, token, 4500, 5, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID, "quantity": 3},
			{"book_id": bookID, "quantity": 3},
		})

		assert.False(t, resp.Success, "合并后超库存应该失败")
		assert.Contains(t, resp.Message, "Insufficient stock")
		assert.Contains(t, resp.Message, "Available: 5")

		// 库存没有被动过
		assert.Equal(t, 5, getBookStock(t, bookID))
	})

	t.Run("重复条目合并为单条明细", func(t *testing.T) {
		bookID := PublishTestBook(t, token, 4500, 10, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID, "quantity": 2},
			{"book_id": bookID, "quantity": 3},
		})

		require.True(t, resp.Success, "结账失败: %s", resp.Message)

		var data TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Len(t, data.Items, 1)
		assert.Equal(t, 5, data.Items[0].Quantity)
		assert.Equal(t, 5, getBookStock(t, bookID))
	})

	t.Run("库存不足", func(t *testing.T) {
		bookID := PublishTestBook(t, token, 8900, 2, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID, "quantity": 3},
		})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "Insufficient stock")
		assert.Contains(t, resp.Message, "Available: 2")
	})

	t.Run("图书不存在", func(t *testing.T) {
		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": 99999999, "quantity": 1},
		})

		assert.False(t, resp.Success)
		assert.Equal(t, "Some books not found", resp.Message)
	})

	t.Run("空购物车", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/transactions", map[string]interface{}{
			"items": []map[string]interface{}{},
		}, token)

		assert.False(t, resp.Success, "空购物车应该失败")
	})

	t.Run("数量为0", func(t *testing.T) {
		bookID := PublishTestBook(t, token, 8900, 10, genreID)

		resp := checkout(t, token, []map[string]interface{}{
			{"book_id": bookID, "quantity": 0},
		})

		assert.False(t, resp.Success, "数量为0应该失败")
	})

	t.Run("未登录不能结账", func(t *testing.T) {
		bookID := PublishTestBook(t, token, 8900, 10, genreID)

		resp := checkout(t, "", []map[string]interface{}{
			{"book_id": bookID, "quantity": 1},
		})

		assert.False(t, resp.Success)
	})
}

// TestCheckoutConcurrency 并发防超卖测试
//
// 教学重点：这是整个项目最重要的测试
// 库存5本，20个并发请求各买1本：
// - 正确实现：恰好5个成功，库存归零
// - 错误实现（先读后写）：可能全部成功，卖出20本
func TestCheckoutConcurrency(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "concurrent_buyer")
	genreID := CreateTestGenre(t, token)

	const stock = 5
	const buyers = 20
	bookID := PublishTestBook(t, token, 8900, stock, genreID)

	var wg sync.WaitGroup
	results := make(chan bool, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := checkout(t, token, []map[string]interface{}{
				{"book_id": bookID, "quantity": 1},
			})
			results <- resp.Success
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}

	assert.Equal(t, stock, succeeded, "成功数应该恰好等于库存数")
	assert.Equal(t, 0, getBookStock(t, bookID), "库存应该恰好归零")

	t.Logf("✓ 并发防超卖验证通过: %d个请求，%d个成功", buyers, succeeded)
}

// TestTransactionHistory 测试交易历史查询
func TestTransactionHistory(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "history_buyer")
	genreID := CreateTestGenre(t, token)
	bookID := PublishTestBook(t, token, 8900, 10, genreID)

	resp := checkout(t, token, []map[string]interface{}{
		{"book_id": bookID, "quantity": 2},
	})
	require.True(t, resp.Success)

	var created TransactionData
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	t.Run("交易列表只包含自己的交易", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/transactions", token)
		require.True(t, resp.Success, "查询失败: %s", resp.Message)

		var list []TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)

		// 明细携带图书身份信息
		require.Len(t, list[0].Items, 1)
		require.NotNil(t, list[0].Items[0].Book)
		assert.Equal(t, bookID, list[0].Items[0].Book.ID)
	})

	t.Run("查询单笔交易", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/transactions/%d", BaseURL, created.ID), token)
		require.True(t, resp.Success, "查询失败: %s", resp.Message)

		var data TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, created.Total, data.Total)
	})

	t.Run("改价不影响历史交易", func(t *testing.T) {
		// 商家改价
		resp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), map[string]interface{}{
			"title":    UniqueName("Repriced"),
			"author":   "Author",
			"price":    19900,
			"genre_id": genreID,
		}, token)
		require.True(t, resp.Success, "改价失败: %s", resp.Message)

		// 历史交易的金额与单价仍是下单时刻的快照
		resp = GetJSON(t, fmt.Sprintf("%s/transactions/%d", BaseURL, created.ID), token)
		require.True(t, resp.Success)

		var data TransactionData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(17800), data.Total)
		assert.Equal(t, int64(8900), data.Items[0].Price)
	})

	t.Run("他人的交易返回404", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "other_buyer")

		resp := GetJSON(t, fmt.Sprintf("%s/transactions/%d", BaseURL, created.ID), otherToken)
		assert.False(t, resp.Success)
		assert.Equal(t, "Transaction not found", resp.Message)
	})

	t.Run("不存在的交易返回404", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/transactions/99999999", token)
		assert.False(t, resp.Success)
		assert.Equal(t, "Transaction not found", resp.Message)
	})
}

// TestTransactionStatistics 测试消费统计
func TestTransactionStatistics(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "stats_buyer")
	genreID := CreateTestGenre(t, token)
	bookID1 := PublishTestBook(t, token, 8900, 10, genreID)
	bookID2 := PublishTestBook(t, token, 12500, 10, genreID)

	require.True(t, checkout(t, token, []map[string]interface{}{
		{"book_id": bookID1, "quantity": 2},
	}).Success)
	require.True(t, checkout(t, token, []map[string]interface{}{
		{"book_id": bookID2, "quantity": 1},
	}).Success)

	t.Run("统计自己的消费", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/transactions/statistics", token)
		require.True(t, resp.Success, "查询失败: %s", resp.Message)

		var data StatisticsData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 2, data.TotalTransactions)
		// 178.00 + 125.00 = 303.00，平均151.50
		assert.Equal(t, 303.00, data.TotalSpent)
		assert.Equal(t, 151.50, data.AveragePerTransaction)

		// 两笔交易都购买了该分类的图书
		require.NotEmpty(t, data.MostPopularGenres)
		assert.Equal(t, genreID, data.MostPopularGenres[0].ID)
		assert.Equal(t, 2, data.MostPopularGenres[0].TransactionCount)
		assert.Equal(t, 3, data.MostPopularGenres[0].TotalBooksSold)

		t.Logf("✓ 消费统计: %d笔交易，共%.2f", data.TotalTransactions, data.TotalSpent)
	})

	t.Run("从未购买过的用户返回全零统计", func(t *testing.T) {
		_, freshToken := RegisterTestUser(t, "fresh_user")
		CreateTestGenre(t, freshToken)

		resp := GetJSON(t, BaseURL+"/transactions/statistics", freshToken)
		require.True(t, resp.Success, "查询失败: %s", resp.Message)

		var data StatisticsData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 0, data.TotalTransactions)
		assert.Equal(t, 0.0, data.TotalSpent)

		// 最少榜从分类表出发，零购买的分类也要上榜
		require.NotEmpty(t, data.LeastPopularGenres)
		for _, g := range data.LeastPopularGenres {
			assert.Equal(t, 0, g.TransactionCount, "分类 %q 应为零购买", g.Name)
		}
	})

	t.Run("未登录不能查看统计", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/transactions/statistics", "")
		assert.False(t, resp.Success)
	})
}
