package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/config"
	"isoko/internal/model/auth"
	"isoko/internal/model/document"
	"isoko/internal/pkg/apperr"
	"isoko/internal/pkg/id"
	"isoko/internal/pkg/slugutil"
	"isoko/internal/pkg/storage"
	"isoko/internal/policy"
	categoryRepo "isoko/internal/repository/category"
	documentRepo "isoko/internal/repository/document"
	reportRepo "isoko/internal/repository/report"
)

// DocumentService 文档服务
type DocumentService struct {
	documentRepo *documentRepo.DocumentRepo
	categoryRepo *categoryRepo.CategoryRepo
	reportRepo   *reportRepo.ReportRepo
	storage      storage.Storage
	uploadCfg    *config.UploadConfig
}

// NewDocumentService 创建文档服务
func NewDocumentService(
	dr *documentRepo.DocumentRepo,
	cr *categoryRepo.CategoryRepo,
	rr *reportRepo.ReportRepo,
	st storage.Storage,
	uploadCfg *config.UploadConfig,
) *DocumentService {
	return &DocumentService{
		documentRepo: dr,
		categoryRepo: cr,
		reportRepo:   rr,
		storage:      st,
		uploadCfg:    uploadCfg,
	}
}

// CreateDocumentInput 文档创建输入
type CreateDocumentInput struct {
	Title          string
	Description    string
	CategoryID     string
	Language       string
	Tags           string
	License        string
	LicenseDetails string

	File        io.Reader
	FileSize    int64
	ContentType string
}

// Create 上传文档
// 新文档一律进入pending状态等待审核，调用方无法指定状态；
// 被封禁用户不能上传
func (s *DocumentService) Create(ctx context.Context, caller *auth.User, input CreateDocumentInput) (*document.Document, error) {
	if !policy.CanUpload(caller) {
		return nil, apperr.Authorization("账号已被封禁，不能上传文档")
	}

	if input.Title == "" {
		return nil, apperr.Validation("文档标题不能为空")
	}
	if !document.Language(input.Language).IsValid() {
		return nil, apperr.Validation("不支持的语言")
	}
	if !document.License(input.License).IsValid() {
		return nil, apperr.Validation("不支持的许可类型")
	}
	if !s.uploadCfg.IsAllowedType(input.ContentType) {
		return nil, apperr.Validation("只支持PDF文件")
	}
	if input.FileSize <= 0 {
		return nil, apperr.Validation("文件不能为空")
	}
	if input.FileSize > s.uploadCfg.MaxSize {
		return nil, apperr.Validation(fmt.Sprintf("文件大小超过限制（最大%d字节）", s.uploadCfg.MaxSize))
	}

	c, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Validation("分类不存在")
		}
		return nil, apperr.Internal("查询分类失败", err)
	}

	docID := id.New()
	storageKey := fmt.Sprintf("documents/%s.pdf", docID)

	if err := s.storage.Upload(ctx, storageKey, input.File, input.ContentType); err != nil {
		log.Error().Err(err).Str("key", storageKey).Msg("failed to upload document file")
		return nil, apperr.Internal("文件上传失败", err)
	}

	doc := &document.Document{
		ID:             docID,
		Title:          input.Title,
		Description:    input.Description,
		CategoryID:     c.ID,
		CategoryName:   c.Name,
		CategorySlug:   c.Slug,
		Language:       document.Language(input.Language),
		Tags:           input.Tags,
		StorageKey:     storageKey,
		FileSize:       input.FileSize,
		ContentType:    input.ContentType,
		License:        document.License(input.License),
		LicenseDetails: input.LicenseDetails,
		Status:         document.StatusPending,
		UploadedBy:     caller.ID,
		UploadedByName: caller.Username,
	}

	if err := s.documentRepo.CreateWithUniqueSlug(ctx, doc, slugutil.Make(input.Title)); err != nil {
		// 入库失败时清理已上传的文件
		if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
			log.Warn().Err(delErr).Str("key", storageKey).Msg("failed to clean up orphan file")
		}
		log.Error().Err(err).Msg("failed to create document")
		return nil, apperr.Internal("创建文档失败", err)
	}

	return doc, nil
}

// findVisible 按slug加载文档并做可见性检查
// 不可见的文档返回not_found，不泄露其存在性
func (s *DocumentService) findVisible(ctx context.Context, caller *auth.User, slug string) (*document.Document, error) {
	doc, err := s.documentRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("文档不存在")
		}
		return nil, apperr.Internal("查询文档失败", err)
	}

	if !policy.CanViewDocument(caller, doc) {
		return nil, apperr.NotFound("文档不存在")
	}

	return doc, nil
}

// Get 获取文档详情（附带浏览计数+1）
func (s *DocumentService) Get(ctx context.Context, caller *auth.User, slug string) (*document.Document, error) {
	doc, err := s.findVisible(ctx, caller, slug)
	if err != nil {
		return nil, err
	}

	// 计数失败不影响读取
	if err := s.documentRepo.IncViewCount(ctx, doc.ID); err != nil {
		log.Warn().Err(err).Str("document_id", doc.ID).Msg("failed to increment view count")
	} else {
		doc.ViewCount++
	}

	return doc, nil
}

// ListInput 文档列表查询输入
type ListInput struct {
	Status       string
	CategoryID   string
	CategorySlug string
	Language     string
	License      string
	Tags         []string
	Search       string
	Page         int
	PageSize     int
}

// List 查询文档列表
// 非审核员（含登录用户）只见approved，审核员全见且可按任意状态筛选；
// 自己的pending/rejected走MyDocuments，不进通用列表
func (s *DocumentService) List(ctx context.Context, caller *auth.User, input ListInput) ([]*document.Document, int64, error) {
	opts := documentRepo.ListOptions{
		Status:       input.Status,
		CategoryID:   input.CategoryID,
		CategorySlug: input.CategorySlug,
		Language:     input.Language,
		License:      input.License,
		Tags:         input.Tags,
		Search:       input.Search,
	}
	if caller != nil {
		opts.ViewerIsModerator = caller.IsModerator()
	}

	docs, total, err := s.documentRepo.List(ctx, opts, input.Page, input.PageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询文档列表失败", err)
	}
	return docs, total, nil
}

// Pending 查询待审核文档（审核员队列，按创建时间倒序）
func (s *DocumentService) Pending(ctx context.Context, page, pageSize int) ([]*document.Document, int64, error) {
	opts := documentRepo.ListOptions{
		Status:            string(document.StatusPending),
		ViewerIsModerator: true,
	}

	docs, total, err := s.documentRepo.List(ctx, opts, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询待审核文档失败", err)
	}
	return docs, total, nil
}

// MyDocuments 查询当前用户上传的全部文档（含pending/rejected）
func (s *DocumentService) MyDocuments(ctx context.Context, caller *auth.User, page, pageSize int) ([]*document.Document, int64, error) {
	opts := documentRepo.ListOptions{
		UploadedBy:        caller.ID,
		ViewerIsModerator: true, // 自己的文档全部可见，关掉可见性过滤
	}

	docs, total, err := s.documentRepo.List(ctx, opts, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询我的文档失败", err)
	}
	return docs, total, nil
}

// UpdateDocumentInput 文档更新输入（nil表示不修改）
// 只开放元数据字段：分类在上传时确定，文件和分类都不可更换
type UpdateDocumentInput struct {
	Title          *string
	Description    *string
	Language       *string
	Tags           *string
	License        *string
	LicenseDetails *string
}

// Update 更新文档元数据（所有者或审核员）
// slug保持稳定，标题变更不影响已有链接；文件本身不可替换
func (s *DocumentService) Update(ctx context.Context, caller *auth.User, slug string, input UpdateDocumentInput) (*document.Document, error) {
	doc, err := s.findVisible(ctx, caller, slug)
	if err != nil {
		return nil, err
	}

	if !policy.CanModify(caller, doc.UploadedBy) {
		return nil, apperr.Authorization("没有权限修改该文档")
	}

	update := bson.M{}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.Validation("文档标题不能为空")
		}
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Language != nil {
		if !document.Language(*input.Language).IsValid() {
			return nil, apperr.Validation("不支持的语言")
		}
		update["language"] = *input.Language
	}
	if input.Tags != nil {
		update["tags"] = *input.Tags
	}
	if input.License != nil {
		if !document.License(*input.License).IsValid() {
			return nil, apperr.Validation("不支持的许可类型")
		}
		update["license"] = *input.License
	}
	if input.LicenseDetails != nil {
		update["license_details"] = *input.LicenseDetails
	}

	if len(update) > 0 {
		if err := s.documentRepo.Update(ctx, doc.ID, update); err != nil {
			return nil, apperr.Internal("更新文档失败", err)
		}
	}

	return s.documentRepo.FindByID(ctx, doc.ID)
}

// Delete 删除文档（所有者或审核员）
// 级联清理：存储文件、关联举报
func (s *DocumentService) Delete(ctx context.Context, caller *auth.User, slug string) error {
	doc, err := s.findVisible(ctx, caller, slug)
	if err != nil {
		return err
	}

	if !policy.CanModify(caller, doc.UploadedBy) {
		return apperr.Authorization("没有权限删除该文档")
	}

	if err := s.documentRepo.Delete(ctx, doc.ID); err != nil {
		return apperr.Internal("删除文档失败", err)
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		log.Warn().Err(err).Str("key", doc.StorageKey).Msg("failed to delete document file")
	}
	if err := s.reportRepo.DeleteByDocument(ctx, doc.ID); err != nil {
		log.Warn().Err(err).Str("document_id", doc.ID).Msg("failed to delete document reports")
	}

	return nil
}

// Download 下载文档文件（附带下载计数+1）
// 返回的ReadCloser由调用方负责关闭
func (s *DocumentService) Download(ctx context.Context, caller *auth.User, slug string) (*document.Document, io.ReadCloser, error) {
	doc, err := s.findVisible(ctx, caller, slug)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		log.Error().Err(err).Str("key", doc.StorageKey).Msg("failed to download document file")
		return nil, nil, apperr.Internal("文件下载失败", err)
	}

	if err := s.documentRepo.IncDownloadCount(ctx, doc.ID); err != nil {
		log.Warn().Err(err).Str("document_id", doc.ID).Msg("failed to increment download count")
	}

	return doc, body, nil
}

// Approve 审核通过（审核员操作）
// 可对任意状态的文档反复执行，每次覆盖审核记录并清除历史拒绝原因
func (s *DocumentService) Approve(ctx context.Context, moderator *auth.User, slug string) (*document.Document, error) {
	return s.review(ctx, moderator, slug, document.StatusApproved, "")
}

// Reject 审核拒绝（审核员操作）
// 拒绝必须给出原因；同样可反复执行
func (s *DocumentService) Reject(ctx context.Context, moderator *auth.User, slug string, reason string) (*document.Document, error) {
	if reason == "" {
		return nil, apperr.Validation("拒绝原因不能为空")
	}
	return s.review(ctx, moderator, slug, document.StatusRejected, reason)
}

func (s *DocumentService) review(ctx context.Context, moderator *auth.User, slug string, status document.Status, reason string) (*document.Document, error) {
	doc, err := s.documentRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("文档不存在")
		}
		return nil, apperr.Internal("查询文档失败", err)
	}

	if err := s.documentRepo.SetReview(ctx, doc.ID, status, moderator.ID, moderator.Username, reason); err != nil {
		log.Error().Err(err).Str("document_id", doc.ID).Msg("failed to set review")
		return nil, apperr.Internal("更新审核状态失败", err)
	}

	return s.documentRepo.FindByID(ctx, doc.ID)
}
