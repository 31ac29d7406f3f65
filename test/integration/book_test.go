package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：图书模块集成测试
//
// 覆盖图书CRUD、分页列表、按分类过滤：
// 1. 价格以最小货币单位存储，price_display是两位小数展示值
// 2. 书名唯一
// 3. 列表接口的分页meta（prev_page/next_page）

// TestBookCreate 测试图书上架
func TestBookCreate(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "book_admin")
	genreID := CreateTestGenre(t, token)

	t.Run("正常上架", func(t *testing.T) {
		title := UniqueName("Clean Code")
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":       title,
			"author":      "Robert Martin",
			"description": "A handbook of agile software craftsmanship",
			"price":       8900,
			"stock":       10,
			"genre_id":    genreID,
		}, token)

		require.True(t, resp.Success, "上架失败: %s", resp.Message)
		assert.Equal(t, "Book added successfully", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, int64(8900), data.Price)
		assert.Equal(t, "89.00", data.PriceDisplay)
		assert.Equal(t, 10, data.Stock)

		t.Logf("✓ 上架成功: id=%d title=%s", data.ID, data.Title)
	})

	t.Run("书名重复", func(t *testing.T) {
		title := UniqueName("Dup Book")
		req := map[string]interface{}{
			"title":    title,
			"author":   "Author",
			"price":    5000,
			"stock":    5,
			"genre_id": genreID,
		}

		resp := PostJSON(t, BaseURL+"/books", req, token)
		require.True(t, resp.Success)

		resp = PostJSON(t, BaseURL+"/books", req, token)
		assert.False(t, resp.Success)
		assert.Equal(t, "Book title already exists", resp.Message)
	})

	t.Run("分类不存在", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":    UniqueName("Orphan"),
			"author":   "Author",
			"price":    5000,
			"stock":    5,
			"genre_id": 99999999,
		}, token)

		assert.False(t, resp.Success)
		assert.Equal(t, "Genre not found", resp.Message)
	})

	t.Run("负价格被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":    UniqueName("Negative"),
			"author":   "Author",
			"price":    -100,
			"stock":    5,
			"genre_id": genreID,
		}, token)

		assert.False(t, resp.Success, "负价格应该被拒绝")
	})

	t.Run("未登录不能上架", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":    UniqueName("NoAuth"),
			"author":   "Author",
			"price":    5000,
			"stock":    5,
			"genre_id": genreID,
		}, "")

		assert.False(t, resp.Success)
	})
}

// TestBookList 测试图书列表与分页
func TestBookList(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "book_lister")
	genreID := CreateTestGenre(t, token)
	for i := 0; i < 3; i++ {
		PublishTestBook(t, token, 8900, 10, genreID)
	}

	t.Run("列表查询_公开接口", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=1&limit=2", "")
		require.True(t, resp.Success, "查询失败: %s", resp.Message)
		assert.Equal(t, "Get all book successfully", resp.Message)

		var list []BookData
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		assert.LessOrEqual(t, len(list), 2)

		var meta PageMeta
		require.NoError(t, json.Unmarshal(resp.Meta, &meta))
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 2, meta.Limit)
		// 至少3本书，第一页必有下一页
		require.NotNil(t, meta.NextPage)
		assert.Equal(t, 2, *meta.NextPage)
		assert.Nil(t, meta.PrevPage)
	})

	t.Run("按分类过滤", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/genre/%d", BaseURL, genreID), "")
		require.True(t, resp.Success, "查询失败: %s", resp.Message)
		assert.Equal(t, "Get all book by genre successfully", resp.Message)

		var list []BookData
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 3)
		for _, b := range list {
			assert.Equal(t, genreID, b.GenreID)
		}
	})

	t.Run("不存在的分类返回404", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/genre/99999999", "")
		assert.False(t, resp.Success)
		assert.Equal(t, "Genre not found", resp.Message)
	})
}

// TestBookDetail 测试图书详情与更新删除
func TestBookDetail(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "book_editor")
	genreID := CreateTestGenre(t, token)
	bookID := PublishTestBook(t, token, 8900, 10, genreID)

	t.Run("查询详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		require.True(t, resp.Success, "查询失败: %s", resp.Message)
		assert.Equal(t, "Get book detail successfully", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, bookID, data.ID)
		assert.Equal(t, "89.00", data.PriceDisplay)
	})

	t.Run("更新图书", func(t *testing.T) {
		newTitle := UniqueName("Updated Book")
		resp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), map[string]interface{}{
			"title":    newTitle,
			"author":   "New Author",
			"price":    9900,
			"stock":    20,
			"genre_id": genreID,
		}, token)

		require.True(t, resp.Success, "更新失败: %s", resp.Message)
		assert.Equal(t, "Book updated successfully", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, newTitle, data.Title)
		assert.Equal(t, int64(9900), data.Price)
		assert.Equal(t, 20, data.Stock)
	})

	t.Run("删除图书", func(t *testing.T) {
		id := PublishTestBook(t, token, 5000, 5, genreID)

		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, id), token)
		require.True(t, resp.Success, "删除失败: %s", resp.Message)
		assert.Equal(t, "Book removed successfully", resp.Message)

		// 软删除后查询返回404
		resp = GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, id), "")
		assert.False(t, resp.Success)
		assert.Equal(t, "Book not found", resp.Message)
	})

	t.Run("不存在的图书", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/99999999", "")
		assert.False(t, resp.Success)
		assert.Equal(t, "Book not found", resp.Message)
	})

	t.Run("非法ID参数", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/abc", "")
		assert.False(t, resp.Success)
	})
}
