package transaction

import (
	"context"
	"math"

	"github.com/pustaka/bookstore/internal/domain/transaction"
	"github.com/pustaka/bookstore/pkg/tracing"
)

// StatisticsUseCase 消费统计用例
// 设计说明：聚合计算全部下推到存储层（SQL聚合），
// 应用层只负责金额换算与DTO组装
type StatisticsUseCase struct {
	txRepo transaction.Repository
}

// NewStatisticsUseCase 创建消费统计用例
func NewStatisticsUseCase(txRepo transaction.Repository) *StatisticsUseCase {
	return &StatisticsUseCase{txRepo: txRepo}
}

// StatisticsResponse 消费统计响应DTO
// 金额字段均为两位小数
type StatisticsResponse struct {
	TotalTransactions     int                     `json:"total_transactions"`
	TotalSpent            float64                 `json:"total_spent"`
	AveragePerTransaction float64                 `json:"average_per_transaction"`
	MostPopularGenres     []transaction.GenreStat `json:"most_popular_genres"`
	LeastPopularGenres    []transaction.GenreStat `json:"least_popular_genres"`
}

// Execute 计算当前用户的消费统计
// 从未购买过的用户返回全零统计（不是404）
func (uc *StatisticsUseCase) Execute(ctx context.Context, userID uint) (*StatisticsResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "bookstore", "transaction.statistics")
	defer span.End()

	stats, err := uc.txRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 没有交易时平均值为0，不做除法
	var average float64
	if stats.TotalTransactions > 0 {
		average = toDisplayAmount(stats.TotalSpent) / float64(stats.TotalTransactions)
	}

	return &StatisticsResponse{
		TotalTransactions:     stats.TotalTransactions,
		TotalSpent:            toDisplayAmount(stats.TotalSpent),
		AveragePerTransaction: round2(average),
		MostPopularGenres:     stats.MostPopular,
		LeastPopularGenres:    stats.LeastPopular,
	}, nil
}

// toDisplayAmount 最小货币单位→两位小数金额
func toDisplayAmount(amount int64) float64 {
	return float64(amount) / 100.0
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
