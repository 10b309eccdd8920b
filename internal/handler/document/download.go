package document

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
)

// Download 下载文档文件
// @Summary      下载文档
// @Description  以文件流返回PDF并累计下载数；可见性规则与详情接口一致
// @Tags         文档
// @Produce      application/pdf
// @Param        slug  path      string  true  "文档slug"
// @Success      200  {file}    file
// @Failure      404  {object}  httputil.ErrorResponse
// @Failure      500  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents/{slug}/download [get]
func (h *Handler) Download(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	doc, body, err := h.documentService.Download(c.Request.Context(), user, c.Param("slug"))
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", doc.ContentType)
	c.Header("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, doc.Slug))

	if _, err := io.Copy(c.Writer, body); err != nil {
		// 响应已开始写入，只能记录日志
		log.Warn().Err(err).Str("document_id", doc.ID).Msg("failed to stream document file")
	}
}
