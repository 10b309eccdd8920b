package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	"isoko/internal/service"
)

// extractBearerToken 从 Authorization header 提取 Bearer token
func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// Auth JWT 认证中间件
// 验证token后从存储加载完整用户实体注入context，封禁/组变更即时生效
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "未授权",
			})
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Token无效或已过期",
			})
			c.Abort()
			return
		}

		ctx := ctxutil.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 带有效token则注入用户，匿名或token无效都放行（按匿名处理）
// 用于公开读接口：详情/下载对所有者放开可见性依赖这里注入的身份
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		ctx := ctxutil.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
