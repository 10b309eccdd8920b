package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
	"isoko/internal/service"
)

// GetMe 获取当前用户信息
// @Summary      获取当前用户信息
// @Description  获取当前登录用户的详细信息
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	// 认证中间件已加载用户实体
	user, _ := ctxutil.GetUser(c.Request.Context())

	httputil.WriteSuccess(c, http.StatusOK, "success", toUserInfo(user))
}

// UpdateMeRequest 更新资料请求（PATCH语义，nil字段不修改）
type UpdateMeRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"` // 邮箱
	FirstName *string `json:"first_name"`                      // 名
	LastName  *string `json:"last_name"`                       // 姓
}

// UpdateMe 更新当前用户资料
// @Summary      更新当前用户资料
// @Description  局部更新邮箱/姓名，未提供的字段保持不变
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdateMeRequest  true  "更新请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      401     {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, service.ProfilePatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "资料已更新", toUserInfo(updated))
}
