package report

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/internal/model/report"
)

// ReportRepo 举报仓库
// 重复举报由(document_id, reported_by)唯一索引兜底，
// 并发冲突以mongo.IsDuplicateKeyError上抛给service层翻译
type ReportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo 创建举报仓库
func NewReportRepo(db *mongo.Database) *ReportRepo {
	return &ReportRepo{
		collection: db.Collection("reports"),
	}
}

// Create 创建举报
func (r *ReportRepo) Create(ctx context.Context, rpt *report.Report) error {
	now := time.Now()
	rpt.CreatedAt = now
	rpt.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, rpt)
	return err
}

// FindByID 根据ID查询举报
func (r *ReportRepo) FindByID(ctx context.Context, id string) (*report.Report, error) {
	var rpt report.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rpt)
	if err != nil {
		return nil, err
	}
	return &rpt, nil
}

// Exists 检查用户是否已举报过该文档
func (r *ReportRepo) Exists(ctx context.Context, documentID, reportedBy string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"document_id": documentID,
		"reported_by": reportedBy,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 分页查询举报列表（按创建时间倒序，可按状态/原因筛选）
func (r *ReportRepo) List(ctx context.Context, status, reason string, page, pageSize int) ([]*report.Report, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if reason != "" {
		filter["reason"] = reason
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reports []*report.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// FindByReporter 查询某用户提交的全部举报（按创建时间倒序）
func (r *ReportRepo) FindByReporter(ctx context.Context, reportedBy string, page, pageSize int) ([]*report.Report, int64, error) {
	filter := bson.M{"reported_by": reportedBy}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reports []*report.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// SetStatus 更新举报处理状态并记录处理人
// moderator_notes每次整体覆盖，传空即清空，避免残留上一次的备注
func (r *ReportRepo) SetStatus(ctx context.Context, id string, status report.Status, reviewerID, reviewerName, notes string) error {
	now := time.Now()
	set := bson.M{
		"status":           status,
		"reviewed_by":      reviewerID,
		"reviewed_by_name": reviewerName,
		"reviewed_at":      now,
		"updated_at":       now,
		"moderator_notes":  notes,
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByDocument 删除某文档的全部举报（文档删除时级联）
func (r *ReportRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"document_id": documentID})
	return err
}
