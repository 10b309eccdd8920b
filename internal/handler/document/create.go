package document

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/ctxutil"
	httputil "isoko/internal/pkg/http"
	"isoko/internal/service"
)

// CreateRequest 文档上传请求（multipart form）
type CreateRequest struct {
	Title          string `form:"title" binding:"required,max=200"`  // 标题（必填）
	Description    string `form:"description"`                       // 描述
	CategoryID     string `form:"category_id" binding:"required"`    // 分类ID（必填）
	Language       string `form:"language" binding:"required"`       // 语言：en/fr
	Tags           string `form:"tags"`                              // 逗号分隔的标签
	License        string `form:"license" binding:"required"`        // 许可类型
	LicenseDetails string `form:"license_details"`                   // 许可补充说明
}

// Create 上传文档
// @Summary      上传文档
// @Description  上传PDF文档，进入待审核状态；被封禁用户不可上传
// @Tags         文档
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "PDF文件"
// @Param        title        formData  string  true   "标题"
// @Param        category_id  formData  string  true   "分类ID"
// @Param        language     formData  string  true   "语言（en/fr）"
// @Param        license      formData  string  true   "许可类型"
// @Param        description  formData  string  false  "描述"
// @Param        tags         formData  string  false  "逗号分隔的标签"
// @Success      201  {object}  httputil.SuccessResponse
// @Failure      400  {object}  httputil.ErrorResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      429  {object}  httputil.ErrorResponse
// @Router       /api/v1/documents [post]
func (h *Handler) Create(c *gin.Context) {
	user, _ := ctxutil.GetUser(c.Request.Context())

	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.WriteBindError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.WriteBindError(c, err)
		return
	}
	defer file.Close()

	doc, err := h.documentService.Create(c.Request.Context(), user, service.CreateDocumentInput{
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Language:       req.Language,
		Tags:           req.Tags,
		License:        req.License,
		LicenseDetails: req.LicenseDetails,
		File:           file,
		FileSize:       fileHeader.Size,
		ContentType:    fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteSuccess(c, http.StatusCreated, "文档已提交审核", toDocumentInfo(doc))
}
