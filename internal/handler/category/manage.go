package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "isoko/internal/pkg/http"
	"isoko/internal/service"
)

// Create 创建分类
// @Summary      创建分类
// @Description  创建新分类，slug由name自动生成（审核员）
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CategoryRequest  true  "分类信息"
// @Success      201     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      409     {object}  httputil.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusCreated, "分类已创建", result)
}

// Update 更新分类
// @Summary      更新分类
// @Description  更新分类信息，slug在创建后保持不变（审核员）
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path      string           true  "分类slug"
// @Param        request  body      CategoryRequest  true  "分类信息"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Router       /api/v1/categories/{slug} [put]
func (h *Handler) Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), c.Param("slug"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "分类已更新", result)
}

// Delete 删除分类
// @Summary      删除分类
// @Description  删除分类；分类下仍有文档时返回409（审核员）
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "分类slug"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Failure      409  {object}  httputil.ErrorResponse
// @Router       /api/v1/categories/{slug} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "分类已删除", nil)
}
