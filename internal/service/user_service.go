package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
	"yatube/internal/repository/redis"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
)

type RegisterInput struct {
	Username  string `validate:"notblank,max=150"`
	Password  string `validate:"required,min=8,max=72"`
	Email     string `validate:"omitempty,email,max=254"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
}

type UserService struct {
	repo   *database.UserRepository
	tokens *redis.TokenRepository
	jwt    *pkg.JWTManager
}

func NewUserService(repo *database.UserRepository, tokens *redis.TokenRepository, jwt *pkg.JWTManager) *UserService {
	return &UserService{repo: repo, tokens: tokens, jwt: jwt}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := pkg.Validate(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  in.Username,
		Password:  string(hash),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	// 用户名重复由唯一索引拦截
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user.ID)
}

// issue 签发新的 token 对，并把 access token 写入 redis，旧会话随之失效
func (s *UserService) issue(ctx context.Context, userID uint64) (*pkg.Pair, error) {
	pair, err := s.jwt.GeneratePair(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Add(ctx, userID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.tokens.Delete(ctx, userID)
}

// Refresh 用 refresh token 换新的 token 对
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUnauthenticated, err)
	}
	if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrUnauthenticated
		}
		return nil, err
	}
	return s.issue(ctx, claims.UserID)
}

// ChangePassword 登录态修改密码，成功后强制重新登录
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrWrongOldPassword
	}
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return pkg.NewValidationError("new_password", "must be 8 to 72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// RequireAdmin 管理员操作前的权限检查
func (s *UserService) RequireAdmin(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return pkg.ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.ErrUnauthenticated
		}
		return err
	}
	if !user.IsAdmin() {
		return pkg.ErrForbidden
	}
	return nil
}

// SetRole 命令行使用
func (s *UserService) SetRole(ctx context.Context, username string, role int) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.UpdateRole(ctx, user.ID, role)
}

// Delete 命令行使用；帖子、评论、关注关系随外键级联删除
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Delete(ctx, user.ID); err != nil {
		slog.Warn("drop session of deleted user", "user_id", user.ID, "err", err)
	}
	return nil
}
