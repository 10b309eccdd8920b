package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModeratorsGroup 审核组名称
// 属于该组的用户与staff一样拥有审核权限
const ModeratorsGroup = "moderators"

// User 用户实体
// ID使用UUID格式（string），避免ObjectID转换的麻烦
// is_moderator是派生能力，不落库，每次请求通过IsModerator()重新计算
type User struct {
	ID        string `bson:"_id,omitempty" json:"id"` // UUID格式的ID
	Username  string `bson:"username" json:"username"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password" json:"-"` // 密码（加密存储，不返回）
	FirstName string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"last_name,omitempty"`

	// 权限
	IsStaff     bool     `bson:"is_staff" json:"is_staff"`
	IsSuperuser bool     `bson:"is_superuser" json:"is_superuser"`
	Groups      []string `bson:"groups,omitempty" json:"groups,omitempty"` // 用户组（如moderators）

	// 封禁状态（仅由审核员的ban/unban操作修改）
	IsBanned     bool       `bson:"is_banned" json:"is_banned"`
	BannedReason string     `bson:"banned_reason,omitempty" json:"banned_reason,omitempty"`
	BannedAt     *time.Time `bson:"banned_at,omitempty" json:"banned_at,omitempty"`

	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsModerator 判断用户是否为审核员（staff或moderators组成员）
func (u *User) IsModerator() bool {
	if u.IsStaff {
		return true
	}
	for _, g := range u.Groups {
		if g == ModeratorsGroup {
			return true
		}
	}
	return false
}

// Collection 返回集合名称
func (u *User) Collection() string {
	return "users"
}

// EnsureIndexes 创建和维护索引
// username/email唯一约束由存储层保证，并发注册冲突直接失败
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "is_banned", Value: 1}},
			Options: options.Index().SetName("idx_banned"),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
