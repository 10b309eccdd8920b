package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
)

// List 查询分类列表
// @Summary      分类列表
// @Description  查询全部分类（按order/name排序，附带已审核文档数），公开接口
// @Tags         分类
// @Produce      json
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      500  {object}  httputil.ErrorResponse
// @Router       /api/v1/categories [get]
func (h *Handler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", categories)
}

// Get 获取分类详情
// @Summary      分类详情
// @Description  根据slug查询分类，公开接口
// @Tags         分类
// @Produce      json
// @Param        slug  path      string  true  "分类slug"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/categories/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	result, err := h.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", result)
}
