package dto

// CheckoutRequest HTTP结账请求
// dive：对items的每个元素应用子校验规则
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CheckoutItemRequest 购物车明细项
// 同一book_id允许出现多次，服务端会合并数量后再校验库存
type CheckoutItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1" example:"2"`
}
