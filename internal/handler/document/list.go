package document

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
	"isoko/internal/service"
)

// List 查询文档列表
// @Summary      文档列表
// @Description  分页查询文档；非审核员只见已审核文档，审核员全见且可按状态筛选
// @Tags         文档
// @Produce      json
// @Param        status       query     string  false  "状态筛选（pending/approved/rejected）"
// @Param        category     query     string  false  "分类slug筛选"
// @Param        category_id  query     string  false  "分类ID筛选"
// @Param        language     query     string  false  "语言筛选（en/fr）"
// @Param        license      query     string  false  "许可类型筛选"
// @Param        tags         query     string  false  "逗号分隔的标签筛选（任一命中）"
// @Param        search       query     string  false  "标题/描述/标签搜索"
// @Param        page         query     int     false  "页码"
// @Param        page_size    query     int     false  "每页条数"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      500  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents [get]
func (h *Handler) List(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())
	page, pageSize := httputil.ParsePagination(c)

	var tags []string
	if raw := c.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	docs, total, err := h.documentService.List(c.Request.Context(), user, service.ListInput{
		Status:       c.Query("status"),
		CategoryID:   c.Query("category_id"),
		CategorySlug: c.Query("category"),
		Language:     c.Query("language"),
		License:      c.Query("license"),
		Tags:         tags,
		Search:       c.Query("search"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success",
		httputil.NewPageData(toDocumentInfos(docs), total, page, pageSize))
}

// Get 获取文档详情
// @Summary      文档详情
// @Description  根据slug查询文档并累计浏览数；未审核文档仅所有者和审核员可见
// @Tags         文档
// @Produce      json
// @Param        slug  path      string  true  "文档slug"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	doc, err := h.documentService.Get(c.Request.Context(), user, c.Param("slug"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusOK, "success", toDocumentInfo(doc))
}
