package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // Refresh Token（必填）
}

// RefreshResponseData 刷新Token响应数据
type RefreshResponseData struct {
	AccessToken string `json:"access_token"` // 新的Access Token
	ExpiresIn   int    `json:"expires_in"`   // 过期时间（秒）
	TokenType   string `json:"token_type"`   // Token类型：Bearer
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Description  使用Refresh Token换取新的Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "刷新请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      401     {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", RefreshResponseData{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		TokenType:   result.TokenType,
	})
}
