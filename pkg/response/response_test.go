package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// perform 执行一次handler并解析响应
func perform(t *testing.T, handler gin.HandlerFunc) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	handler(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return w.Code, body
}

func TestSuccess(t *testing.T) {
	status, body := perform(t, func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})

	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body["success"] != true {
		t.Error("success should be true")
	}
	// 成功且无message时省略message字段
	if _, ok := body["message"]; ok {
		t.Error("message should be omitted")
	}
}

func TestCreated(t *testing.T) {
	status, body := perform(t, func(c *gin.Context) {
		Created(c, "Transaction created successfully", gin.H{"id": 1})
	})

	if status != http.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
	if body["message"] != "Transaction created successfully" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestError(t *testing.T) {
	t.Run("AppError使用自带状态码", func(t *testing.T) {
		status, body := perform(t, func(c *gin.Context) {
			Error(c, apperrors.New(http.StatusNotFound, "Transaction not found"))
		})

		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
		if body["success"] != false {
			t.Error("success should be false")
		}
		if body["message"] != "Transaction not found" {
			t.Errorf("message = %v", body["message"])
		}
		if _, ok := body["data"]; ok {
			t.Error("data should be omitted on error")
		}
	})

	t.Run("普通错误转为500_不泄露细节", func(t *testing.T) {
		status, body := perform(t, func(c *gin.Context) {
			Error(c, errors.New("dial tcp 127.0.0.1:3306: connection refused"))
		})

		if status != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", status)
		}
		if body["message"] != "Internal server error" {
			t.Errorf("message = %v（内部错误细节不能返回给客户端）", body["message"])
		}
	})
}

func TestBadRequest(t *testing.T) {
	status, body := perform(t, func(c *gin.Context) {
		BadRequest(c, "Invalid request parameters")
	})

	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body["message"] != "Invalid request parameters" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestNewPageMeta(t *testing.T) {
	t.Run("第一页没有prev_page", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 25)

		if meta.PrevPage != nil {
			t.Error("prev_page should be nil on first page")
		}
		if meta.NextPage == nil || *meta.NextPage != 2 {
			t.Errorf("next_page = %v, want 2", meta.NextPage)
		}
	})

	t.Run("中间页两者都有", func(t *testing.T) {
		meta := NewPageMeta(2, 10, 25)

		if meta.PrevPage == nil || *meta.PrevPage != 1 {
			t.Errorf("prev_page = %v, want 1", meta.PrevPage)
		}
		if meta.NextPage == nil || *meta.NextPage != 3 {
			t.Errorf("next_page = %v, want 3", meta.NextPage)
		}
	})

	t.Run("最后一页没有next_page", func(t *testing.T) {
		meta := NewPageMeta(3, 10, 25)

		if meta.NextPage != nil {
			t.Error("next_page should be nil on last page")
		}
	})

	t.Run("整除边界", func(t *testing.T) {
		// 20条记录每页10条：正好2页
		meta := NewPageMeta(2, 10, 20)
		if meta.NextPage != nil {
			t.Error("next_page should be nil when total is exact multiple")
		}
	})

	t.Run("空结果", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 0)
		if meta.PrevPage != nil || meta.NextPage != nil {
			t.Error("empty result should have no prev/next page")
		}
	})
}
