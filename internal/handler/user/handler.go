package user

import (
	"time"

	"isoko/internal/model/auth"
	"isoko/internal/service"
)

// Handler 用户管理处理器（审核员侧）
type Handler struct {
	userService *service.UserService
}

// NewHandler 创建用户管理处理器
func NewHandler(userService *service.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

// UserDetail 用户详情（审核员视角，含封禁信息）
type UserDetail struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	IsStaff      bool     `json:"is_staff"`
	IsModerator  bool     `json:"is_moderator"`
	Groups       []string `json:"groups,omitempty"`
	IsBanned     bool     `json:"is_banned"`
	BannedReason string   `json:"banned_reason,omitempty"`
	BannedAt     string   `json:"banned_at,omitempty"`
	LastLoginAt  string   `json:"last_login_at,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// toUserDetail 将User实体转换为UserDetail
func toUserDetail(u *auth.User) UserDetail {
	detail := UserDetail{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsStaff:      u.IsStaff,
		IsModerator:  u.IsModerator(),
		Groups:       u.Groups,
		IsBanned:     u.IsBanned,
		BannedReason: u.BannedReason,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}

	if u.BannedAt != nil {
		detail.BannedAt = u.BannedAt.Format(time.RFC3339)
	}
	if u.LastLoginAt != nil {
		detail.LastLoginAt = u.LastLoginAt.Format(time.RFC3339)
	}

	return detail
}

// toUserDetails 批量转换
func toUserDetails(users []*auth.User) []UserDetail {
	details := make([]UserDetail, 0, len(users))
	for _, u := range users {
		details = append(details, toUserDetail(u))
	}
	return details
}
