package document

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
	"isoko/internal/service"
)

// UpdateRequest 文档更新请求（PATCH语义，nil字段不修改）
// 分类在上传时确定，不在更新范围内
type UpdateRequest struct {
	Title          *string `json:"title" binding:"omitempty,max=200"` // 标题
	Description    *string `json:"description"`                       // 描述
	Language       *string `json:"language"`                          // 语言
	Tags           *string `json:"tags"`                              // 标签
	License        *string `json:"license"`                           // 许可类型
	LicenseDetails *string `json:"license_details"`                   // 许可补充说明
}

// Update 更新文档元数据
// @Summary      更新文档
// @Description  局部更新文档元数据（所有者或审核员）；slug保持不变，文件不可替换
// @Tags         文档
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path      string         true  "文档slug"
// @Param        request  body      UpdateRequest  true  "更新请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug} [patch]
func (h *Handler) Update(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), user, c.Param("slug"), service.UpdateDocumentInput{
		Title:          req.Title,
		Description:    req.Description,
		Language:       req.Language,
		Tags:           req.Tags,
		License:        req.License,
		LicenseDetails: req.LicenseDetails,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "文档已更新", toDocumentInfo(doc))
}

// Delete 删除文档
// @Summary      删除文档
// @Description  删除文档及其存储文件和关联举报（所有者或审核员）
// @Tags         文档
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "文档slug"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	if err := h.documentService.Delete(c.Request.Context(), user, c.Param("slug")); err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "文档已删除", nil)
}
