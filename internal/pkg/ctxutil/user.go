package ctxutil

import (
	"context"

	"isoko/internal/model/auth"
)

// userKeyType 使用私有类型避免与其他 context key 冲突
type userKeyType struct{}

var userKey = userKeyType{}

// WithUser 将已认证的用户实体注入到 context 中
// 说明：在认证中间件解析JWT并加载用户后调用，后续所有权限判断
// 都基于这个完整实体（含groups），而不是Token里的快照
func WithUser(ctx context.Context, user *auth.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userKey, user)
}

// GetUser 从 context 中解析当前用户
// 返回值：
//   - *auth.User: 当前用户实体
//   - bool      : 是否存在已认证用户
func GetUser(ctx context.Context) (*auth.User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(userKey).(*auth.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}
