// Package cache 查询结果缓存。Redis 未启用时使用 Noop
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"SmartBetting/internal/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "smartbetting:"

// Cache 以 JSON 形式存取查询结果
type Cache interface {
	// Get 命中时把值解码进 dest 并返回 true
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Close() error
}

// Key 拼接缓存键，空片段会被跳过：Key("valuebets", "2025-01-15", "nba") → smartbetting:valuebets:2025-01-15:nba
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, strings.ToLower(p))
		}
	}
	return keyPrefix + strings.Join(kept, ":")
}

// New 按配置返回 Redis 缓存；未启用时返回 Noop
func New(ctx context.Context, cfg config.RedisConfig) (Cache, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis 失败(%s): %w", cfg.Addr, err)
	}
	return NewRedis(client, cfg.TTL), nil
}

// Redis 基于 go-redis 的缓存实现
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("解码缓存 %s 失败: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("编码缓存 %s 失败: %w", key, err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop 不缓存
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) Close() error                                           { return nil }
