package document

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/internal/model/document"
	"isoko/internal/pkg/slugutil"
)

// 并发slug冲突的重试上限，超过视为异常
const maxSlugRetries = 20

// DocumentRepo 文档仓库
type DocumentRepo struct {
	collection *mongo.Collection
}

// NewDocumentRepo 创建文档仓库
func NewDocumentRepo(db *mongo.Database) *DocumentRepo {
	return &DocumentRepo{
		collection: db.Collection("documents"),
	}
}

// CreateWithUniqueSlug 创建文档并保证slug唯一
// 不做先查后插（并发下有竞态），直接插入并捕获唯一索引冲突，
// 冲突则换下一个后缀重试：base、base-1、base-2...
func (r *DocumentRepo) CreateWithUniqueSlug(ctx context.Context, doc *document.Document, baseSlug string) error {
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	for i := 0; i < maxSlugRetries; i++ {
		doc.Slug = slugutil.WithSuffix(baseSlug, i)

		_, err := r.collection.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}

	return fmt.Errorf("failed to allocate unique slug for %q after %d attempts", baseSlug, maxSlugRetries)
}

// FindByID 根据ID查询文档
func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	var doc document.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindBySlug 根据slug查询文档
func (r *DocumentRepo) FindBySlug(ctx context.Context, slug string) (*document.Document, error) {
	var doc document.Document
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List 分页查询文档列表（按创建时间倒序）
func (r *DocumentRepo) List(ctx context.Context, opts ListOptions, page, pageSize int) ([]*document.Document, int64, error) {
	filter := BuildListFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []*document.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// Update 更新文档字段
func (r *DocumentRepo) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetReview 写入审核结果
// approve/reject可反复执行，每次都覆盖reviewed_by/reviewed_at；
// approve时清除历史的rejection_reason
func (r *DocumentRepo) SetReview(ctx context.Context, id string, status document.Status, reviewerID, reviewerName, reason string) error {
	now := time.Now()
	set := bson.M{
		"status":           status,
		"reviewed_by":      reviewerID,
		"reviewed_by_name": reviewerName,
		"reviewed_at":      now,
		"updated_at":       now,
	}

	ops := bson.M{"$set": set}
	if status == document.StatusRejected {
		set["rejection_reason"] = reason
	} else {
		ops["$unset"] = bson.M{"rejection_reason": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, ops)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncViewCount 浏览计数+1
// 纯计数器更新，不触碰updated_at，并发$inc不丢计数
func (r *DocumentRepo) IncViewCount(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}})
	return err
}

// IncDownloadCount 下载计数+1
func (r *DocumentRepo) IncDownloadCount(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"download_count": 1}})
	return err
}

// CountByCategory 统计分类下的文档总数（删除保护用）
func (r *DocumentRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

// CountApprovedByCategory 统计分类下已通过审核的文档数
func (r *DocumentRepo) CountApprovedByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"category_id": categoryID,
		"status":      document.StatusApproved,
	})
}

// UpdateCategoryDenorm 分类改名后同步文档上的冗余名称
// 分类slug创建后不变，无需同步
func (r *DocumentRepo) UpdateCategoryDenorm(ctx context.Context, categoryID, name string) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"category_id": categoryID},
		bson.M{"$set": bson.M{"category_name": name}})
	return err
}

// Delete 删除文档
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
