package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pustaka/bookstore/internal/infrastructure/config"
)

// 连接池与启动探活的兜底值，配置缺省时生效
const (
	defaultPoolSize    = 10
	defaultDialTimeout = 5 * time.Second
	pingTimeout        = 3 * time.Second
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. 连接池与超时参数从配置读取，缺省时使用兜底值
// 2. 启动时带超时探活，Redis不可用则快速失败
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(clientOptions(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	log.Println("✓ Redis连接成功")
	return client, nil
}

// clientOptions 由配置组装连接选项
func clientOptions(cfg *config.Config) *redis.Options {
	opts := &redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}

	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	return opts
}
