package category

import (
	"isoko/internal/service"
)

// Handler 分类处理器
type Handler struct {
	categoryService *service.CategoryService
}

// NewHandler 创建分类处理器
func NewHandler(categoryService *service.CategoryService) *Handler {
	return &Handler{
		categoryService: categoryService,
	}
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"` // 分类名称（必填）
	Description string `json:"description"`                     // 描述
	Icon        string `json:"icon"`                            // 图标
	Order       int    `json:"order"`                           // 排序权重（小的在前）
}
