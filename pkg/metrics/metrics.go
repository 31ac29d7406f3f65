// Package metrics 提供基于Prometheus的指标收集
//
// 指标是可观测性三支柱之一（Tracing、Metrics、Logging）：
// - Tracing回答"为什么慢？"
// - Metrics回答"有多少？多快？"
// - Logging回答"发生了什么？"
//
// # 核心概念
//
// 1. Counter（计数器）：只增不减的累计值，如HTTP请求总数、结账总数
// 2. Gauge（仪表盘）：可增可减的瞬时值，如正在处理的请求数
// 3. Histogram（直方图）：观测值的分布，如请求耗时、交易金额
//
// # 指标命名规范
//
// - Counter以`_total`结尾：http_requests_total、checkouts_total
// - Histogram以单位结尾：http_request_duration_seconds
// - 避免高基数标签：不要用user_id做标签，用status、method这类有限值
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 业务代码中：
//	metrics.RecordCheckout("success", total)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 结账业务指标

	// CheckoutsTotal 结账请求总数（Counter）
	// 标签：status（success/insufficient_stock/not_found/invalid/error）
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutAmount 成交金额分布（Histogram，展示货币单位）
	CheckoutAmount prometheus.Histogram

	// CheckoutDuration 结账耗时（Histogram）
	CheckoutDuration prometheus.Histogram

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，注册所有指标到全局Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 结账业务指标
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "结账请求总数",
		},
		[]string{"status"},
	)

	CheckoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_amount",
			Help: "成交金额分布（展示货币单位）",
			// 桶按典型客单价设置
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "结账耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// RecordCheckout 记录一次结账结果
// status为success时同时记录成交金额分布
// 未调用InitMetrics时（如单元测试）为空操作
func RecordCheckout(status string, total int64) {
	if CheckoutsTotal == nil {
		return
	}
	CheckoutsTotal.With(prometheus.Labels{"status": status}).Inc()

	if status == "success" && CheckoutAmount != nil {
		CheckoutAmount.Observe(float64(total) / 100.0)
	}
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
