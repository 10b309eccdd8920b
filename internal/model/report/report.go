package report

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Report 文档举报实体
// 每个用户对同一文档只能举报一次（(document_id, reported_by)复合唯一约束）
// document_title/slug与reported_by_name为创建时写入的冗余字段
type Report struct {
	ID             string `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	DocumentID     string `bson:"document_id" json:"document_id"`
	DocumentTitle  string `bson:"document_title,omitempty" json:"document_title,omitempty"`
	DocumentSlug   string `bson:"document_slug,omitempty" json:"document_slug,omitempty"`
	ReportedBy     string `bson:"reported_by" json:"reported_by"`
	ReportedByName string `bson:"reported_by_name,omitempty" json:"reported_by_name,omitempty"`
	Reason         Reason `bson:"reason" json:"reason"`
	Description    string `bson:"description" json:"description"`

	// 审核
	Status         Status     `bson:"status" json:"status"` // 初始为pending，仅由审核员操作变更
	ReviewedBy     string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedByName string     `bson:"reviewed_by_name,omitempty" json:"reviewed_by_name,omitempty"`
	ReviewedAt     *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ModeratorNotes string     `bson:"moderator_notes,omitempty" json:"moderator_notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Reason 举报原因
type Reason string

const (
	ReasonCopyright     Reason = "copyright"     // 版权侵犯
	ReasonSpam          Reason = "spam"          // 垃圾或误导内容
	ReasonPersonalInfo  Reason = "personal_info" // 包含个人信息
	ReasonInappropriate Reason = "inappropriate" // 不当内容
	ReasonOther         Reason = "other"         // 其他
)

// IsValid 检查举报原因是否有效
func (r Reason) IsValid() bool {
	switch r {
	case ReasonCopyright, ReasonSpam, ReasonPersonalInfo, ReasonInappropriate, ReasonOther:
		return true
	}
	return false
}

// Status 举报处理状态
type Status string

const (
	StatusPending   Status = "pending"   // 待处理（初始状态）
	StatusReviewed  Status = "reviewed"  // 已查看
	StatusResolved  Status = "resolved"  // 已处理
	StatusDismissed Status = "dismissed" // 已驳回
)

// IsValid 检查状态是否有效
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// IsReviewTarget 检查状态是否为审核员可设置的目标状态
func (s Status) IsReviewTarget() bool {
	return s == StatusReviewed || s == StatusResolved || s == StatusDismissed
}

// Collection 返回集合名称
func (r *Report) Collection() string {
	return "reports"
}

// EnsureIndexes 创建和维护索引
// (document_id, reported_by)复合唯一索引是重复举报的最终防线
func (r *Report) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(r.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "document_id", Value: 1}, bson.E{Key: "reported_by", Value: 1}},
			Options: options.Index().SetName("idx_document_reporter").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "status", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "reported_by", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reporter_created"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
