package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if CheckoutsTotal == nil {
		t.Error("CheckoutsTotal未初始化")
	}
	if CheckoutAmount == nil {
		t.Error("CheckoutAmount未初始化")
	}

	// 重复调用不应panic（promauto重复注册会panic，靠initialized标记保护）
	InitMetrics()
}

// TestRecordCheckout 测试结账指标记录
func TestRecordCheckout(t *testing.T) {
	InitMetrics()

	before := getCounterVecValue(t, CheckoutsTotal, map[string]string{"status": "success"})
	amountBefore := getHistogramCount(t, CheckoutAmount)

	RecordCheckout("success", 12500) // 125.00

	after := getCounterVecValue(t, CheckoutsTotal, map[string]string{"status": "success"})
	if after != before+1 {
		t.Errorf("成功结账计数错误: expected=%f, got=%f", before+1, after)
	}

	amountAfter := getHistogramCount(t, CheckoutAmount)
	if amountAfter != amountBefore+1 {
		t.Errorf("成交金额观测次数错误: expected=%d, got=%d", amountBefore+1, amountAfter)
	}

	// 失败状态只计数，不记录金额
	failBefore := getCounterVecValue(t, CheckoutsTotal, map[string]string{"status": "insufficient_stock"})
	RecordCheckout("insufficient_stock", 0)
	failAfter := getCounterVecValue(t, CheckoutsTotal, map[string]string{"status": "insufficient_stock"})
	if failAfter != failBefore+1 {
		t.Errorf("失败结账计数错误: expected=%f, got=%f", failBefore+1, failAfter)
	}
	if getHistogramCount(t, CheckoutAmount) != amountAfter {
		t.Error("失败结账不应记录成交金额")
	}
}

// TestRecordCheckoutUninitialized 未初始化时应为空操作
// 单元测试里业务代码不调用InitMetrics，RecordCheckout不能panic
func TestRecordCheckoutUninitialized(t *testing.T) {
	saved := CheckoutsTotal
	CheckoutsTotal = nil
	defer func() { CheckoutsTotal = saved }()

	RecordCheckout("success", 100) // 不应panic
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{
		"method": "POST",
		"path":   "/api/v1/transactions",
		"status": "201",
	}

	before := getCounterVecValue(t, HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)

	after := getCounterVecValue(t, HTTPRequestsTotal, labels)
	if after != before+2 {
		t.Errorf("CounterVec值错误: expected=%f, got=%f", before+2, after)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != before+2 {
		t.Errorf("Gauge递增后值错误: expected=%f, got=%f", before+2, v)
	}

	DecGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != before+1 {
		t.Errorf("Gauge递减后值错误: expected=%f, got=%f", before+1, v)
	}
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/books"}

	before := getHistogramVecCount(t, HTTPRequestDuration, labels)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)

	after := getHistogramVecCount(t, HTTPRequestDuration, labels)
	if after != before+2 {
		t.Errorf("HistogramVec观测次数错误: expected=%d, got=%d", before+2, after)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
