package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/auth"
	"isoko/internal/pkg/apperr"
	"isoko/internal/policy"
	authRepo "isoko/internal/repository/auth"
)

// UserService 用户管理服务（审核员侧）
type UserService struct {
	userRepo *authRepo.UserRepo
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo *authRepo.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 分页查询用户列表
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]*auth.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal("查询用户列表失败", err)
	}
	return users, total, nil
}

// Get 获取用户详情
func (s *UserService) Get(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	return user, nil
}

// Ban 封禁用户
// staff/superuser不可被封禁；封禁必须给出原因
func (s *UserService) Ban(ctx context.Context, userID, reason string) (*auth.User, error) {
	if reason == "" {
		return nil, apperr.Validation("封禁原因不能为空")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !policy.CanBan(user) {
		return nil, apperr.Validation("管理员账号不可被封禁")
	}

	if err := s.userRepo.SetBanned(ctx, userID, true, reason); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to ban user")
		return nil, apperr.Internal("封禁用户失败", err)
	}

	return s.Get(ctx, userID)
}

// Unban 解封用户
// 无条件幂等：未被封禁的用户解封也成功
func (s *UserService) Unban(ctx context.Context, userID string) (*auth.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.SetBanned(ctx, userID, false, ""); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to unban user")
		return nil, apperr.Internal("解封用户失败", err)
	}

	return s.Get(ctx, userID)
}
