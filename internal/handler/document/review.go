package document

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
)

// RejectRequest 审核拒绝请求
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"` // 拒绝原因（必填）
}

// Approve 审核通过
// @Summary      审核通过
// @Description  将文档置为approved；可对任意状态反复执行，清除历史拒绝原因（审核员）
// @Tags         审核
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "文档slug"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	moderator, _ := ctxutil.GetUser(c.Request.Context())

	doc, err := h.documentService.Approve(c.Request.Context(), moderator, c.Param("slug"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "文档已通过审核", toDocumentInfo(doc))
}

// Reject 审核拒绝
// @Summary      审核拒绝
// @Description  将文档置为rejected，必须给出原因；可反复执行（审核员）
// @Tags         审核
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path      string         true  "文档slug"
// @Param        request  body      RejectRequest  true  "拒绝请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	moderator, _ := ctxutil.GetUser(c.Request.Context())

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	doc, err := h.documentService.Reject(c.Request.Context(), moderator, c.Param("slug"), req.Reason)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "文档已拒绝", toDocumentInfo(doc))
}

// Pending 查询待审核文档
// @Summary      待审核队列
// @Description  分页查询全部待审核文档（审核员）
// @Tags         审核
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "页码"
// @Param        page_size  query     int  false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Router       /api/v1/moderation/documents [get]
func (h *Handler) Pending(c *gin.Context) {
	page, pageSize := httputil.ParsePagination(c)

	docs, total, err := h.documentService.Pending(c.Request.Context(), page, pageSize)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(toDocumentInfos(docs), total, page, pageSize))
}

// My 查询我上传的文档
// @Summary      我的文档
// @Description  分页查询当前用户上传的全部文档（含待审核和被拒绝的）
// @Tags         文档
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "页码"
// @Param        page_size  query     int  false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Router       /api/v1/my/documents [get]
func (h *Handler) My(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())
	page, pageSize := httputil.ParsePagination(c)

	docs, total, err := h.documentService.MyDocuments(c.Request.Context(), user, page, pageSize)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(toDocumentInfos(docs), total, page, pageSize))
}
