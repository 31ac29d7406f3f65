// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
// 1. Trace（追踪）：一个完整的请求链路，如一次结账从HTTP入口到落库
// 2. Span（跨度）：一个操作单元，包含名称、起止时间、状态
// 3. SpanContext：跨服务传递的TraceID/SpanID元数据
//
// 本项目在结账、统计等关键路径上创建Span，
// 通过OTLP gRPC导出到Jaeger等Collector
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// endpoint是Collector的OTLP gRPC端点（如localhost:4317）。
// 返回的shutdown函数必须在程序退出前调用，强制刷新未发送的Span。
//
//	shutdown, err := tracing.InitTracer("bookstore-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 本地Collector不启用TLS
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	// service.name用于在Jaeger UI中标识和分组服务
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		// 开发环境100%采样；生产环境建议TraceIDRatioBased按比例采样
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// BatchSpanProcessor批量发送，性能优于逐条发送
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 全局Provider：业务代码直接otel.Tracer()获取，无需逐层传递
	otel.SetTracerProvider(tp)

	// W3C Trace Context + Baggage：跨服务调用时传递TraceID/SpanID
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// ctx包含父Span时新Span自动成为子Span，否则成为根Span。
// 必须使用返回的ctx调用下游函数，否则无法构建调用树。
// 未调用InitTracer时返回no-op Span，业务代码无需判空。
//
//	ctx, span := tracing.StartSpan(ctx, "bookstore", "checkout")
//	defer span.End()
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于日志关联）
// 在日志中记录TraceID后，可以在Jaeger UI按ID搜索完整链路
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
