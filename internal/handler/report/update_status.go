package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/model/report"
	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
)

// UpdateStatusRequest 举报处理请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"` // 目标状态：reviewed/resolved/dismissed
	Notes  string `json:"notes"`                     // 处理备注
}

// UpdateStatus 更新举报处理状态
// @Summary      处理举报
// @Description  将举报置为reviewed/resolved/dismissed并记录处理人（审核员）
// @Tags         举报
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "举报ID"
// @Param        request  body      UpdateStatusRequest  true  "处理请求"
// @Success      200     {object}  httputil.SuccessResponse
// @Failure      400     {object}  httputil.ErrorResponse
// @Failure      403     {object}  httputil.ErrorResponse
// @Failure      404     {object}  httputil.ErrorResponse
// @Router       /api/v1/reports/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	moderator, _ := ctxutil.GetUser(c.Request.Context())

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	rpt, err := h.reportService.UpdateStatus(c.Request.Context(), moderator,
		c.Param("id"), report.Status(req.Status), req.Notes)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "举报已处理", rpt)
}
