package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// List 查询用户列表
// @Summary      用户列表
// @Description  分页查询全部用户（审核员）
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "页码"
// @Param        page_size  query     int  false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Router       /api/v1/users [get]
func (h *Handler) List(c *gin.Context) {
	page, pageSize := httputil.ParsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(toUserDetails(users), total, page, pageSize))
}

// Get 获取用户详情
// @Summary      用户详情
// @Description  查询单个用户（审核员）
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "用户ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", toUserDetail(user))
}
