package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/auth"
	"isoko/internal/model/category"
	"isoko/internal/model/document"
	"isoko/internal/model/report"
)

// EnsureIndexes 创建所有模型的索引
// 这是一个统一的入口，用于在应用启动时创建所有模型的索引
// 唯一索引（用户名/邮箱、分类name/slug、文档slug、举报(document,reporter)）
// 是并发写入冲突的存储层防线，必须在服务接收请求前就绪
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&auth.User{},
		&auth.RefreshToken{},
		&category.Category{},
		&document.Document{},
		&report.Report{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
