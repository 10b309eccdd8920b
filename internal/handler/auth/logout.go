package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// LogoutRequest 退出登录请求
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 要吊销的Refresh Token（必填）
}

// Logout 退出登录
// @Summary      退出登录
// @Description  吊销Refresh Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      LogoutRequest  true  "退出请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "已退出登录", nil)
}
