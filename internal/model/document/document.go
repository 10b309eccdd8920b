package document

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document 文档实体
// 上传后进入审核流程：pending -> approved/rejected，两个终态之间可由审核员反复切换
// uploaded_by_name/reviewed_by_name/category_*是创建/审核时写入的冗余字段，避免列表查询join
type Document struct {
	ID          string `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	Title       string `bson:"title" json:"title"`
	Slug        string `bson:"slug" json:"slug"` // URL标识（唯一，冲突时追加数字后缀）
	Description string `bson:"description" json:"description"`

	// 归类
	CategoryID   string   `bson:"category_id" json:"category_id"`
	CategoryName string   `bson:"category_name,omitempty" json:"category_name,omitempty"`
	CategorySlug string   `bson:"category_slug,omitempty" json:"category_slug,omitempty"`
	Language     Language `bson:"language" json:"language"`
	Tags         string   `bson:"tags,omitempty" json:"tags,omitempty"` // 逗号分隔的标签

	// 文件
	StorageKey  string `bson:"storage_key" json:"-"` // 存储路径（key），不对外暴露
	FileSize    int64  `bson:"file_size" json:"file_size"`
	ContentType string `bson:"content_type" json:"content_type"`

	// 许可
	License        License `bson:"license" json:"license"`
	LicenseDetails string  `bson:"license_details,omitempty" json:"license_details,omitempty"`

	// 审核
	Status          Status     `bson:"status" json:"status"` // 创建时强制为pending，忽略调用方传值
	UploadedBy      string     `bson:"uploaded_by" json:"uploaded_by"`
	UploadedByName  string     `bson:"uploaded_by_name,omitempty" json:"uploaded_by_name,omitempty"`
	ReviewedBy      string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"` // 仅由approve/reject写入
	ReviewedByName  string     `bson:"reviewed_by_name,omitempty" json:"reviewed_by_name,omitempty"`
	ReviewedAt      *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`

	// 计数器（只增不减，仅由两个计数操作通过$inc修改）
	ViewCount     int64 `bson:"view_count" json:"view_count"`
	DownloadCount int64 `bson:"download_count" json:"download_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsApproved 检查文档是否已通过审核
func (d *Document) IsApproved() bool {
	return d.Status == StatusApproved
}

// TagList 返回切分后的标签列表
func (d *Document) TagList() []string {
	if d.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(d.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Collection 返回集合名称
func (d *Document) Collection() string {
	return "documents"
}

// EnsureIndexes 创建和维护索引
// slug唯一约束是并发创建去重的最终保证（插入冲突后重试下一个后缀）
func (d *Document) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(d.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "status", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "category_id", Value: 1}, bson.E{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_category_status"),
		},
		{
			Keys:    bson.D{bson.E{Key: "uploaded_by", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_uploader_created"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
