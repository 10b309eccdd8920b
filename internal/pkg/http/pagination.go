package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination 解析分页参数（page/page_size）
// 非法值回落到默认值，page_size超过上限按上限截断
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = defaultPage
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// PageData 分页响应数据
type PageData struct {
	Items    interface{} `json:"items"`     // 当前页数据
	Total    int64       `json:"total"`     // 总条数
	Page     int         `json:"page"`      // 当前页码
	PageSize int         `json:"page_size"` // 每页条数
}

// NewPageData 构造分页响应
func NewPageData(items interface{}, total int64, page, pageSize int) *PageData {
	return &PageData{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
