package document

import (
	"isoko/internal/model/document"
	"isoko/internal/service"
)

// Handler 文档处理器
type Handler struct {
	documentService *service.DocumentService
}

// NewHandler 创建文档处理器
func NewHandler(documentService *service.DocumentService) *Handler {
	return &Handler{
		documentService: documentService,
	}
}

// DocumentInfo 文档响应
// 在实体之上附加切分好的标签列表
type DocumentInfo struct {
	*document.Document
	TagList []string `json:"tag_list"`
}

// toDocumentInfo 将Document实体转换为响应
func toDocumentInfo(d *document.Document) *DocumentInfo {
	return &DocumentInfo{
		Document: d,
		TagList:  d.TagList(),
	}
}

// toDocumentInfos 批量转换
func toDocumentInfos(docs []*document.Document) []*DocumentInfo {
	infos := make([]*DocumentInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, toDocumentInfo(d))
	}
	return infos
}
