package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	"isoko/internal/policy"
)

// RequireModerator 审核员权限中间件
// 必须挂在Auth之后；非审核员一律403，与not_found严格区分
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ctxutil.GetUser(c.Request.Context())
		if !ok || !policy.IsModerator(user) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "需要审核员权限",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
