package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/auth"
	"isoko/internal/model/report"
	"isoko/internal/pkg/apperr"
	"isoko/internal/pkg/id"
	"isoko/internal/policy"
	documentRepo "isoko/internal/repository/document"
	reportRepo "isoko/internal/repository/report"
)

// ReportService 举报服务
type ReportService struct {
	reportRepo   *reportRepo.ReportRepo
	documentRepo *documentRepo.DocumentRepo
}

// NewReportService 创建举报服务
func NewReportService(rr *reportRepo.ReportRepo, dr *documentRepo.DocumentRepo) *ReportService {
	return &ReportService{reportRepo: rr, documentRepo: dr}
}

// Create 举报文档
// 每个用户对同一文档只能举报一次：先查后插给出友好错误，
// 并发竞争由复合唯一索引兜底（translate为conflict）
func (s *ReportService) Create(ctx context.Context, caller *auth.User, documentSlug string, reason report.Reason, description string) (*report.Report, error) {
	if !reason.IsValid() {
		return nil, apperr.Validation("不支持的举报原因")
	}

	doc, err := s.documentRepo.FindBySlug(ctx, documentSlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("文档不存在")
		}
		return nil, apperr.Internal("查询文档失败", err)
	}
	if !policy.CanViewDocument(caller, doc) {
		return nil, apperr.NotFound("文档不存在")
	}

	if exists, err := s.reportRepo.Exists(ctx, doc.ID, caller.ID); err != nil {
		return nil, apperr.Internal("查询举报失败", err)
	} else if exists {
		return nil, apperr.Validation("已举报过该文档")
	}

	rpt := &report.Report{
		ID:             id.New(),
		DocumentID:     doc.ID,
		DocumentTitle:  doc.Title,
		DocumentSlug:   doc.Slug,
		ReportedBy:     caller.ID,
		ReportedByName: caller.Username,
		Reason:         reason,
		Description:    description,
		Status:         report.StatusPending,
	}

	if err := s.reportRepo.Create(ctx, rpt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("已举报过该文档")
		}
		log.Error().Err(err).Msg("failed to create report")
		return nil, apperr.Internal("创建举报失败", err)
	}

	return rpt, nil
}

// List 查询举报列表（审核员操作，可按状态/原因筛选）
func (s *ReportService) List(ctx context.Context, status, reason string, page, pageSize int) ([]*report.Report, int64, error) {
	reports, total, err := s.reportRepo.List(ctx, status, reason, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询举报列表失败", err)
	}
	return reports, total, nil
}

// Get 获取举报详情（审核员操作）
func (s *ReportService) Get(ctx context.Context, reportID string) (*report.Report, error) {
	rpt, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("举报不存在")
		}
		return nil, apperr.Internal("查询举报失败", err)
	}
	return rpt, nil
}

// UpdateStatus 更新举报处理状态（审核员操作）
// 目标状态只能是reviewed/resolved/dismissed
func (s *ReportService) UpdateStatus(ctx context.Context, moderator *auth.User, reportID string, status report.Status, notes string) (*report.Report, error) {
	if !status.IsReviewTarget() {
		return nil, apperr.Validation("不支持的处理状态")
	}

	if _, err := s.Get(ctx, reportID); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SetStatus(ctx, reportID, status, moderator.ID, moderator.Username, notes); err != nil {
		log.Error().Err(err).Str("report_id", reportID).Msg("failed to update report status")
		return nil, apperr.Internal("更新举报状态失败", err)
	}

	return s.Get(ctx, reportID)
}

// MyReports 查询当前用户提交的举报
func (s *ReportService) MyReports(ctx context.Context, caller *auth.User, page, pageSize int) ([]*report.Report, int64, error) {
	reports, total, err := s.reportRepo.FindByReporter(ctx, caller.ID, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询我的举报失败", err)
	}
	return reports, total, nil
}
