package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析、测试数据准备）封装成可复用的函数
//
// 集成测试需要一个运行中的服务（go run ./cmd/api）
// 服务不可达时整个测试自动跳过，不会失败

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// seq 保证同一秒内生成的测试数据也不重名
var seq atomic.Int64

// Response 统一响应结构
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

// UserData 用户信息响应数据
type UserData struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// LoginData 登录响应数据
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// GenreData 分类响应数据
type GenreData struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BookCount   int64  `json:"book_count"`
}

// BookData 图书响应数据
type BookData struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Stock        int    `json:"stock"`
	GenreID      uint   `json:"genre_id"`
	GenreName    string `json:"genre_name"`
}

// PageMeta 分页元信息
type PageMeta struct {
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
	PrevPage *int `json:"prev_page"`
	NextPage *int `json:"next_page"`
}

// TransactionData 交易响应数据
type TransactionData struct {
	ID           uint                  `json:"id"`
	UserID       uint                  `json:"user_id"`
	Total        int64                 `json:"total"`
	TotalDisplay string                `json:"total_display"`
	Items        []TransactionItemData `json:"items"`
	CreatedAt    string                `json:"created_at"`
}

// TransactionItemData 交易明细行
type TransactionItemData struct {
	ID       uint         `json:"id"`
	BookID   uint         `json:"book_id"`
	Quantity int          `json:"quantity"`
	Price    int64        `json:"price"`
	Subtotal int64        `json:"subtotal"`
	Book     *BookRefData `json:"book"`
}

// BookRefData 明细中的图书身份信息
type BookRefData struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// GenreStatData 分类购买统计
type GenreStatData struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	TransactionCount int    `json:"transaction_count"`
	TotalBooksSold   int    `json:"total_books_sold"`
}

// StatisticsData 消费统计响应数据
type StatisticsData struct {
	TotalTransactions     int             `json:"total_transactions"`
	TotalSpent            float64         `json:"total_spent"`
	AveragePerTransaction float64         `json:"average_per_transaction"`
	MostPopularGenres     []GenreStatData `json:"most_popular_genres"`
	LeastPopularGenres    []GenreStatData `json:"least_popular_genres"`
}

// RequireServer 检查服务是否可达，不可达时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务不可达，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// doJSON 发送请求并解析JSON响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// UniqueName 生成唯一的测试名称
// 时间戳+自增序号，测试重复运行也不会撞唯一索引
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// RegisterTestUser 注册测试用户并返回Token
// 封装注册+登录的完整流程，让测试更关注业务逻辑
func RegisterTestUser(t *testing.T, username string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(username)
	registerReq := map[string]string{
		"email":    email,
		"password": "password123",
		"username": username,
	}

	registerResp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
	require.True(t, registerResp.Success, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "password123",
	}

	loginResp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
	require.True(t, loginResp.Success, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// CreateTestGenre 创建测试分类并返回分类ID
func CreateTestGenre(t *testing.T, token string) uint {
	t.Helper()

	genreReq := map[string]string{
		"name":        UniqueName("Genre"),
		"description": "integration test genre",
	}

	resp := PostJSON(t, BaseURL+"/genres", genreReq, token)
	require.True(t, resp.Success, "创建分类失败: %s", resp.Message)

	var data GenreData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析分类响应失败")

	return data.ID
}

// PublishTestBook 上架测试图书并返回图书ID
func PublishTestBook(t *testing.T, token string, price int64, stock int, genreID uint) uint {
	t.Helper()

	bookReq := map[string]interface{}{
		"title":       UniqueName("Book"),
		"author":      "Test Author",
		"description": "integration test book",
		"price":       price,
		"stock":       stock,
		"genre_id":    genreID,
	}

	resp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.True(t, resp.Success, "图书上架失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return data.ID
}
