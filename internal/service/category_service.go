package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/category"
	"isoko/internal/pkg/apperr"
	"isoko/internal/pkg/id"
	"isoko/internal/pkg/slugutil"
	categoryRepo "isoko/internal/repository/category"
	documentRepo "isoko/internal/repository/document"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo *categoryRepo.CategoryRepo
	documentRepo *documentRepo.DocumentRepo
}

// NewCategoryService 创建分类服务
func NewCategoryService(cr *categoryRepo.CategoryRepo, dr *documentRepo.DocumentRepo) *CategoryService {
	return &CategoryService{categoryRepo: cr, documentRepo: dr}
}

// CategoryWithCount 带文档统计的分类
// document_count只统计已通过审核的文档
type CategoryWithCount struct {
	*category.Category
	DocumentCount int64 `json:"document_count"`
}

// List 查询全部分类（带approved文档数）
func (s *CategoryService) List(ctx context.Context) ([]*CategoryWithCount, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("查询分类列表失败", err)
	}

	result := make([]*CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		count, err := s.documentRepo.CountApprovedByCategory(ctx, c.ID)
		if err != nil {
			return nil, apperr.Internal("统计分类文档数失败", err)
		}
		result = append(result, &CategoryWithCount{Category: c, DocumentCount: count})
	}

	return result, nil
}

// GetBySlug 根据slug获取分类详情
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryWithCount, error) {
	c, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("分类不存在")
		}
		return nil, apperr.Internal("查询分类失败", err)
	}

	count, err := s.documentRepo.CountApprovedByCategory(ctx, c.ID)
	if err != nil {
		return nil, apperr.Internal("统计分类文档数失败", err)
	}

	return &CategoryWithCount{Category: c, DocumentCount: count}, nil
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	Order       int
}

// Create 创建分类（审核员操作）
// slug由name生成，name/slug唯一性由唯一索引兜底
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*category.Category, error) {
	if input.Name == "" {
		return nil, apperr.Validation("分类名称不能为空")
	}

	if exists, err := s.categoryRepo.ExistsByName(ctx, input.Name); err != nil {
		return nil, apperr.Internal("查询分类失败", err)
	} else if exists {
		return nil, apperr.Validation("分类名称已存在")
	}

	c := &category.Category{
		ID:          id.New(),
		Name:        input.Name,
		Slug:        slugutil.Make(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
		Order:       input.Order,
	}

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("分类名称或slug已存在")
		}
		log.Error().Err(err).Msg("failed to create category")
		return nil, apperr.Internal("创建分类失败", err)
	}

	return c, nil
}

// Update 更新分类（审核员操作）
// slug在创建时生成一次后保持稳定，改名不会重新生成；
// 改名后同步文档上的冗余分类名称
func (s *CategoryService) Update(ctx context.Context, slug string, input CategoryInput) (*category.Category, error) {
	c, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("分类不存在")
		}
		return nil, apperr.Internal("查询分类失败", err)
	}

	update := bson.M{
		"description": input.Description,
		"icon":        input.Icon,
		"order":       input.Order,
	}

	renamed := input.Name != "" && input.Name != c.Name
	if renamed {
		if exists, err := s.categoryRepo.ExistsByName(ctx, input.Name); err != nil {
			return nil, apperr.Internal("查询分类失败", err)
		} else if exists {
			return nil, apperr.Validation("分类名称已存在")
		}
		update["name"] = input.Name
	}

	if err := s.categoryRepo.Update(ctx, c.ID, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("分类名称已存在")
		}
		return nil, apperr.Internal("更新分类失败", err)
	}

	if renamed {
		if err := s.documentRepo.UpdateCategoryDenorm(ctx, c.ID, input.Name); err != nil {
			log.Warn().Err(err).Str("category_id", c.ID).Msg("failed to sync category name on documents")
		}
	}

	return s.categoryRepo.FindByID(ctx, c.ID)
}

// Delete 删除分类（审核员操作）
// 分类下仍有文档时拒绝删除
func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	c, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("分类不存在")
		}
		return apperr.Internal("查询分类失败", err)
	}

	count, err := s.documentRepo.CountByCategory(ctx, c.ID)
	if err != nil {
		return apperr.Internal("统计分类文档数失败", err)
	}
	if count > 0 {
		return apperr.Conflict("分类下仍有文档，不能删除")
	}

	if err := s.categoryRepo.Delete(ctx, c.ID); err != nil {
		return apperr.Internal("删除分类失败", err)
	}

	return nil
}
