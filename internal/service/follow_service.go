package service

import (
	"context"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
)

type FollowService struct {
	repo  *database.FollowRepository
	users *database.UserRepository
}

func NewFollowService(repo *database.FollowRepository, users *database.UserRepository) *FollowService {
	return &FollowService{repo: repo, users: users}
}

// Follow 重复关注返回 changed=false；关注自己由数据库约束拒绝
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 {
		return false, pkg.ErrUnauthenticated
	}
	return s.repo.Follow(ctx, userID, authorID)
}

func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 {
		return false, pkg.ErrUnauthenticated
	}
	return s.repo.Unfollow(ctx, userID, authorID)
}

// FollowUsername 按用户名关注，路由层使用
func (s *FollowService) FollowUsername(ctx context.Context, userID uint64, username string) (bool, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.Follow(ctx, userID, author.ID)
}

func (s *FollowService) UnfollowUsername(ctx context.Context, userID uint64, username string) (bool, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.Unfollow(ctx, userID, author.ID)
}

// IsFollowing 匿名用户不关注任何人
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.repo.IsFollowing(ctx, userID, authorID)
}

func (s *FollowService) FollowedAuthors(ctx context.Context, userID uint64) ([]model.User, error) {
	if userID == 0 {
		return []model.User{}, nil
	}
	return s.repo.FollowedAuthors(ctx, userID)
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowings(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowers(ctx, userID, cursor, limit)
}
