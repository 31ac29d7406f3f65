package handler

import (
	"github.com/gin-gonic/gin"

	apptx "github.com/pustaka/bookstore/internal/application/transaction"
	"github.com/pustaka/bookstore/internal/interface/http/dto"
	"github.com/pustaka/bookstore/internal/interface/http/middleware"
	"github.com/pustaka/bookstore/pkg/response"
)

// TransactionHandler 交易HTTP处理器
type TransactionHandler struct {
	checkoutUseCase   *apptx.CheckoutUseCase
	historyUseCase    *apptx.HistoryUseCase
	statisticsUseCase *apptx.StatisticsUseCase
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler(
	checkoutUseCase *apptx.CheckoutUseCase,
	historyUseCase *apptx.HistoryUseCase,
	statisticsUseCase *apptx.StatisticsUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		checkoutUseCase:   checkoutUseCase,
		historyUseCase:    historyUseCase,
		statisticsUseCase: statisticsUseCase,
	}
}

// Checkout 购买图书（结账）
// @Summary      购买图书
// @Description  提交购物车创建交易（需要登录），条件原子扣减防止超卖
// @Tags         交易模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "购物车"
// @Success      201 {object} response.Response{data=apptx.CheckoutResponse} "购买成功"
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "部分图书不存在"
// @Router       /transactions [post]
//
// 实现说明：防超卖的核心流程
// 1. 合并购物车中同一图书的重复条目
// 2. 批量查询图书并做读时库存校验（给出友好错误）
// 3. 事务内落库交易与明细、条件原子扣减库存
//    UPDATE books SET stock = stock - ? WHERE id = ? AND stock - ? >= 0
// 4. 任一扣减未命中则整个事务回滚
//
// 验证方法：创建库存为10的图书，10个并发请求各购买5本，
// 预期只有2个请求成功，其余返回失败且库存最终为0
func (h *TransactionHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	items := make([]apptx.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apptx.CheckoutItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
	}

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apptx.CheckoutRequest{
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", result)
}

// List 交易历史
// @Summary      交易历史
// @Description  返回当前用户的全部交易（按创建时间降序）
// @Tags         交易模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apptx.TransactionInfo} "获取成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.historyUseCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 交易详情
// @Summary      交易详情
// @Description  返回当前用户的单笔交易；他人的交易返回404
// @Tags         交易模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "交易ID"
// @Success      200 {object} response.Response{data=apptx.TransactionInfo} "获取成功"
// @Failure      404 {object} response.Response "交易不存在"
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.historyUseCase.Get(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Statistics 消费统计
// @Summary      消费统计
// @Description  返回当前用户的交易总数、消费总额与分类购买排行
// @Tags         交易模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=apptx.StatisticsResponse} "获取成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /transactions/statistics [get]
func (h *TransactionHandler) Statistics(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.statisticsUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
