package auth

import (
	"time"

	"isoko/internal/model/auth"
)

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID          string `json:"id"`                      // 用户ID
	Username    string `json:"username"`                // 用户名
	Email       string `json:"email"`                   // 邮箱
	FirstName   string `json:"first_name,omitempty"`    // 名
	LastName    string `json:"last_name,omitempty"`     // 姓
	IsModerator bool   `json:"is_moderator"`            // 是否为审核员（派生字段）
	IsBanned    bool   `json:"is_banned"`               // 是否被封禁
	LastLoginAt string `json:"last_login_at,omitempty"` // 最后登录时间
	CreatedAt   string `json:"created_at,omitempty"`    // 创建时间
}

// TokenData Token对响应数据
type TokenData struct {
	AccessToken  string `json:"access_token"`  // Access Token
	RefreshToken string `json:"refresh_token"` // Refresh Token
	ExpiresIn    int    `json:"expires_in"`    // 过期时间（秒）
	TokenType    string `json:"token_type"`    // Token类型：Bearer
}

// toUserInfo 将User实体转换为UserInfo（所有API共用）
func toUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsModerator: user.IsModerator(),
		IsBanned:    user.IsBanned,
	}

	if user.LastLoginAt != nil {
		info.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
	}
	info.CreatedAt = user.CreatedAt.Format(time.RFC3339)

	return info
}
