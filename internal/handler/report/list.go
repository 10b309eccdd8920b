package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
)

// List 查询举报列表
// @Summary      举报列表
// @Description  分页查询举报，可按状态/原因筛选（审核员）
// @Tags         举报
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "状态筛选（pending/reviewed/resolved/dismissed）"
// @Param        reason     query     string  false  "原因筛选"
// @Param        page       query     int     false  "页码"
// @Param        page_size  query     int     false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Router       /api/v1/reports [get]
func (h *Handler) List(c *gin.Context) {
	page, pageSize := httputil.ParsePagination(c)

	reports, total, err := h.reportService.List(c.Request.Context(),
		c.Query("status"), c.Query("reason"), page, pageSize)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(reports, total, page, pageSize))
}

// Get 获取举报详情
// @Summary      举报详情
// @Description  查询单条举报（审核员）
// @Tags         举报
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "举报ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/reports/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	rpt, err := h.reportService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", rpt)
}

// My 查询我提交的举报
// @Summary      我的举报
// @Description  分页查询当前用户提交的全部举报
// @Tags         举报
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "页码"
// @Param        page_size  query     int  false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Router       /api/v1/my/reports [get]
func (h *Handler) My(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())
	page, pageSize := httputil.ParsePagination(c)

	reports, total, err := h.reportService.MyReports(c.Request.Context(), user, page, pageSize)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(reports, total, page, pageSize))
}
