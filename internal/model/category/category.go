package category

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Category 文档分类实体
// slug在创建时由name派生一次，之后不再变化
// 分类被文档引用时不可删除（保护性关联，由Service层检查）
type Category struct {
	ID          string    `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	Name        string    `bson:"name" json:"name"`        // 名称（唯一）
	Slug        string    `bson:"slug" json:"slug"`        // URL标识（唯一，由name派生）
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"` // 图标名或emoji
	Order       int       `bson:"order" json:"order"`                   // 展示顺序（小的在前）
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 返回集合名称
func (c *Category) Collection() string {
	return "categories"
}

// EnsureIndexes 创建和维护索引
// name/slug唯一约束由存储层保证
func (c *Category) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_name").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "order", Value: 1}, bson.E{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_order_name"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
