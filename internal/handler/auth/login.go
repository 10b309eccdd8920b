package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// LoginRequest 用户登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名（必填）
	Password string `json:"password" binding:"required"` // 密码（必填）
}

// LoginResponseData 登录响应数据
type LoginResponseData struct {
	AccessToken  string   `json:"access_token"`  // Access Token
	RefreshToken string   `json:"refresh_token"` // Refresh Token
	ExpiresIn    int      `json:"expires_in"`    // 过期时间（秒）
	TokenType    string   `json:"token_type"`    // Token类型：Bearer
	User         UserInfo `json:"user"`          // 用户信息
}

// Login 用户登录
// @Summary      用户登录
// @Description  用户登录，返回Access Token和Refresh Token；被封禁用户仍可登录（只读）
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      401     {object}  httputil.ErrorResponse
// @Failure      500     {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "登录成功", LoginResponseData{
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresIn:    result.Token.ExpiresIn,
		TokenType:    result.Token.TokenType,
		User:         toUserInfo(result.User),
	})
}
