package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/hash"
	"qcmeta-go/pkg/token"
)

// 用户角色常量。目录的写操作只对管理员开放，普通用户只读。
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, password, displayName string) (*model.User, error)
	Login(username, password string) (accessToken, refreshToken string, err error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	Logout(tokenString string) error
	GetProfile(username string) (*model.User, error)
	IsTokenBlacklisted(tokenString string) bool
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。新注册的用户都是只读角色。
func (s *userService) Register(username, password, displayName string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("用户名和密码不能为空")
	}

	// 1. 检查用户名是否已存在
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, errors.New("用户名已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 创建新用户
	newUser := &model.User{
		Username:    username,
		Password:    hashedPassword,
		DisplayName: displayName,
		Role:        RoleUser,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// Login 处理用户登录的业务逻辑。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errors.New("invalid credentials")
		}
		return "", "", err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", errors.New("invalid credentials")
	}

	// 3. 生成 access token 和 refresh token
	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// RefreshToken 用一个有效的 refresh token 换取一对新 token。
// 旧的 refresh token 会被拉黑，保证它只能使用一次。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshTokenString)
	if err != nil {
		return "", "", err
	}
	if s.IsTokenBlacklisted(refreshTokenString) {
		return "", "", errors.New("refresh token 已失效")
	}

	// 重新加载用户，角色变更在下一次刷新时生效
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return "", "", err
	}

	newAccessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	expiration := time.Until(claims.ExpiresAt.Time)
	if expiration > 0 {
		_ = database.RDB.Set(context.Background(), "blacklist:"+refreshTokenString, "true", expiration).Err()
	}
	return newAccessToken, newRefreshToken, nil
}

// Logout 处理用户登出逻辑，将 token 加入 Redis 黑名单。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	// token 的剩余有效期作为黑名单 key 的过期时间，
	// token 自然过期后黑名单条目也随之清理。
	expiration := time.Until(claims.ExpiresAt.Time)
	if expiration <= 0 {
		return nil
	}
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// GetProfile 根据用户名获取用户详细信息。
func (s *userService) GetProfile(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}

// IsTokenBlacklisted 检查一个 token 是否已被登出拉黑。
// Redis 异常时放行，黑名单只是尽力而为的补充防线。
func (s *userService) IsTokenBlacklisted(tokenString string) bool {
	result, err := database.RDB.Exists(context.Background(), "blacklist:"+tokenString).Result()
	if err != nil {
		return false
	}
	return result > 0
}
