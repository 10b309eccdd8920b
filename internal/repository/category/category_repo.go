package category

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/internal/model/category"
)

// CategoryRepo 分类仓库
// name/slug的唯一性由唯一索引保证
type CategoryRepo struct {
	collection *mongo.Collection
}

// NewCategoryRepo 创建分类仓库
func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{
		collection: db.Collection("categories"),
	}
}

// Create 创建分类
func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, c)
	return err
}

// FindByID 根据ID查询分类
func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var c category.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindBySlug 根据slug查询分类
func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	var c category.Category
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsByName 检查分类名是否已存在
func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 查询全部分类（按order、name排序）
func (r *CategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	opts := options.Find().SetSort(bson.D{
		bson.E{Key: "order", Value: 1},
		bson.E{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*category.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// Update 更新分类字段
func (r *CategoryRepo) Update(ctx context.Context, id string, update bson.M) error {
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

// Delete 删除分类
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
