// Package ratelimit 基于Redis的固定窗口限流
// 挂载点见 middleware.RateLimitByIP / RateLimitByUser，算法本身用
// INCR+EXPIRE实现：窗口内计数超过阈值则拒绝。
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter 固定窗口限流器
type Limiter struct {
	client *redis.Client
}

// New 创建限流器
func New(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow 检查 name/key 在窗口内是否还有配额
// 计数器key形如 ratelimit:{name}:{key}，首次计数时设置窗口过期
func (l *Limiter) Allow(ctx context.Context, name, key string, limit int, window time.Duration) (bool, error) {
	counterKey := fmt.Sprintf("ratelimit:%s:%s", name, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pipe.ExpireNX(ctx, counterKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(limit), nil
}

// Reset 清除计数器（测试用）
func (l *Limiter) Reset(ctx context.Context, name, key string) error {
	return l.client.Del(ctx, fmt.Sprintf("ratelimit:%s:%s", name, key)).Err()
}
