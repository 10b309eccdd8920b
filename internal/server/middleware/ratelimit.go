package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"isoko/internal/pkg/ctxutil"
	"isoko/internal/pkg/ratelimit"
)

// RateLimitByIP 按来源IP限流（注册/登录等匿名入口）
// limiter为nil（未配置Redis）时直接放行；Redis故障时放行并记录警告
func RateLimitByIP(limiter *ratelimit.Limiter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), name, c.ClientIP(), limit, window)
		if err != nil {
			log.Warn().Err(err).Str("name", name).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    42901,
				"message": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimitByUser 按用户限流（文档上传等已认证入口）
// 必须挂在Auth之后
func RateLimitByUser(limiter *ratelimit.Limiter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		user, ok := ctxutil.GetUser(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), name, user.ID, limit, window)
		if err != nil {
			log.Warn().Err(err).Str("name", name).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    42901,
				"message": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
