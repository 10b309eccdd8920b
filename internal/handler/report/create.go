package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/model/report"
	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
)

// CreateRequest 举报请求
type CreateRequest struct {
	DocumentSlug string `json:"document_slug" binding:"required"` // 被举报文档的slug（必填）
	Reason       string `json:"reason" binding:"required"`        // 举报原因（必填）
	Description  string `json:"description"`                      // 补充说明
}

// Create 举报文档
// @Summary      举报文档
// @Description  举报违规文档；每个用户对同一文档只能举报一次
// @Tags         举报
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateRequest  true  "举报请求"
// @Success      201     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Failure      409     {object}  httputil.ErrorResponse
// @Router       /api/v1/reports [post]
func (h *Handler) Create(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	rpt, err := h.reportService.Create(c.Request.Context(), user,
		req.DocumentSlug, report.Reason(req.Reason), req.Description)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusCreated, "举报已提交", rpt)
}
