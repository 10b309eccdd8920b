package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"` // 用户名（必填）
	Email     string `json:"email" binding:"required,email"`            // 邮箱（必填）
	Password  string `json:"password" binding:"required,min=8"`         // 密码（必填，至少8位）
	Password2 string `json:"password2" binding:"required"`              // 确认密码（必填）
	FirstName string `json:"first_name"`                                // 名（可选）
	LastName  string `json:"last_name"`                                 // 姓（可选）
}

// RegisterResponseData 注册响应数据
type RegisterResponseData struct {
	User  UserInfo  `json:"user"`  // 用户信息
	Token TokenData `json:"token"` // Token对
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册新用户，成功后直接返回Token对
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      409     {object}  httputil.ErrorResponse
// @Failure      500     {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(),
		req.Username, req.Email, req.Password, req.Password2, req.FirstName, req.LastName)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusCreated, "注册成功", RegisterResponseData{
		User: toUserInfo(result.User),
		Token: TokenData{
			AccessToken:  result.Token.AccessToken,
			RefreshToken: result.Token.RefreshToken,
			ExpiresIn:    result.Token.ExpiresIn,
			TokenType:    result.Token.TokenType,
		},
	})
}
