package report

import (
	"isoko/internal/service"
)

// Handler 举报处理器
type Handler struct {
	reportService *service.ReportService
}

// NewHandler 创建举报处理器
func NewHandler(reportService *service.ReportService) *Handler {
	return &Handler{
		reportService: reportService,
	}
}
