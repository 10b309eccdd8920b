package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/auth"
	"isoko/internal/pkg/apperr"
	"isoko/internal/pkg/id"
	"isoko/internal/pkg/jwt"
	"isoko/internal/pkg/password"
	authRepo "isoko/internal/repository/auth"
)

// AuthService 认证服务
type AuthService struct {
	userRepo         *authRepo.UserRepo
	refreshTokenRepo *authRepo.RefreshTokenRepo
	jwt              *jwt.JWT
	refreshExpiry    time.Duration // Refresh Token过期时间
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *authRepo.UserRepo,
	refreshTokenRepo *authRepo.RefreshTokenRepo,
	jwtSecret string,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwt:              jwt.NewJWT(jwtSecret, accessTokenExpiry),
		refreshExpiry:    refreshTokenExpiry,
	}
}

// TokenPair 签发的Token对
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
}

// RegisterResult 注册结果
type RegisterResult struct {
	User  *auth.User
	Token *TokenPair
}

// Register 用户注册
// 注册成功即视为登录，直接签发Token对
func (s *AuthService) Register(ctx context.Context, username, email, pwd, pwd2, firstName, lastName string) (*RegisterResult, error) {
	if pwd != pwd2 {
		return nil, apperr.Validation("两次输入的密码不一致")
	}

	// 预检查给出友好错误；并发竞争由唯一索引兜底
	if exists, err := s.userRepo.ExistsByUsername(ctx, username); err != nil {
		return nil, apperr.Internal("查询用户失败", err)
	} else if exists {
		return nil, apperr.Validation("用户名已被注册")
	}
	if exists, err := s.userRepo.ExistsByEmail(ctx, email); err != nil {
		return nil, apperr.Internal("查询用户失败", err)
	} else if exists {
		return nil, apperr.Validation("邮箱已被注册")
	}

	hashedPassword, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, apperr.Internal("密码加密失败", err)
	}

	user := &auth.User{
		ID:        id.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("用户名或邮箱已被注册")
		}
		log.Error().Err(err).Msg("failed to create user")
		return nil, apperr.Internal("创建用户失败", err)
	}

	token, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Token: token}, nil
}

// LoginResult 登录结果
type LoginResult struct {
	User  *auth.User
	Token *TokenPair
}

// Login 用户登录
// 用户不存在和密码错误返回同一条消息，不泄露用户是否存在；
// 被封禁用户保留登录能力（只读），不在此处拦截
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Authentication("用户名或密码错误")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}

	if !password.Verify(pwd, user.Password) {
		return nil, apperr.Authentication("用户名或密码错误")
	}

	token, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间，失败只记录警告，不影响登录
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Msg("failed to update last login time")
	}

	return &LoginResult{User: user, Token: token}, nil
}

// issueTokenPair 签发Access/Refresh Token对
func (s *AuthService) issueTokenPair(ctx context.Context, user *auth.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, apperr.Internal("生成Token失败", err)
	}

	refreshTokenValue := jwt.GenerateRefreshToken()
	refreshToken := &auth.RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     refreshTokenValue,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		log.Error().Err(err).Msg("failed to create refresh token")
		return nil, apperr.Internal("创建Refresh Token失败", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenValue,
		ExpiresIn:    int(s.jwt.GetExpiration().Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// RefreshTokenResult 刷新Token结果
type RefreshTokenResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
}

// RefreshToken 刷新Access Token
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenValue string) (*RefreshTokenResult, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, apperr.Authentication("Refresh Token无效")
	}

	if refreshToken.IsExpired() {
		_ = s.refreshTokenRepo.DeleteByToken(ctx, refreshTokenValue)
		return nil, apperr.Authentication("Refresh Token已过期")
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, apperr.Authentication("用户不存在")
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, apperr.Internal("生成Token失败", err)
	}

	return &RefreshTokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwt.GetExpiration().Seconds()),
		TokenType:   "Bearer",
	}, nil
}

// Logout 退出登录（吊销Refresh Token）
func (s *AuthService) Logout(ctx context.Context, refreshTokenValue string) error {
	return s.refreshTokenRepo.DeleteByToken(ctx, refreshTokenValue)
}

// GetProfile 获取当前用户资料
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	return user, nil
}

// ProfilePatch 资料更新字段（nil表示不修改）
type ProfilePatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile 更新当前用户资料
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*auth.User, error) {
	update := bson.M{}
	if patch.Email != nil {
		// 邮箱变更需要重新检查唯一性
		existing, err := s.userRepo.FindByEmail(ctx, *patch.Email)
		if err == nil && existing.ID != userID {
			return nil, apperr.Validation("邮箱已被注册")
		}
		update["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		update["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		update["last_name"] = *patch.LastName
	}

	if len(update) > 0 {
		if err := s.userRepo.Update(ctx, userID, update); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.NotFound("用户不存在")
			}
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperr.Conflict("邮箱已被注册")
			}
			return nil, apperr.Internal("更新用户资料失败", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// ValidateToken 验证Access Token并加载用户
// 每次请求都从存储加载最新用户，封禁/组变更即时生效
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.User, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, apperr.Authentication("Token已过期")
		}
		return nil, apperr.Authentication("Token无效")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Authentication("用户不存在")
	}

	return user, nil
}
