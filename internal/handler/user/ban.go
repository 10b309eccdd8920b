package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// BanRequest 封禁用户请求
type BanRequest struct {
	Reason string `json:"reason" binding:"required"` // 封禁原因（必填）
}

// Ban 封禁用户
// @Summary      封禁用户
// @Description  封禁普通用户；staff/superuser不可被封禁。被封禁用户仍可登录浏览，但不能上传
// @Tags         用户管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string      true  "用户ID"
// @Param        request  body      BanRequest  true  "封禁请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Router       /api/v1/users/{id}/ban [post]
func (h *Handler) Ban(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	user, err := h.userService.Ban(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "用户已封禁", toUserDetail(user))
}

// Unban 解封用户
// @Summary      解封用户
// @Description  解除用户封禁；对未封禁用户执行也视为成功
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "用户ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/users/{id}/unban [post]
func (h *Handler) Unban(c *gin.Context) {
	user, err := h.userService.Unban(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "用户已解封", toUserDetail(user))
}
