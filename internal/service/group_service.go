package service

import (
	"context"
	"log/slog"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
)

type GroupInput struct {
	Slug        string `validate:"notblank,max=50,slug"`
	Title       string `validate:"notblank,max=200"`
	Description string
}

type GroupService struct {
	repo  *database.GroupRepository
	cache GlobalFeedCache
}

func NewGroupService(repo *database.GroupRepository, cache GlobalFeedCache) *GroupService {
	return &GroupService{repo: repo, cache: cache}
}

// CreateGroup 权限由调用方检查；slug 重复返回 ErrConstraintViolation
func (s *GroupService) CreateGroup(ctx context.Context, in GroupInput) (*model.Group, error) {
	if err := pkg.Validate(in); err != nil {
		return nil, err
	}

	group := &model.Group{
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.repo.List(ctx)
}

// DeleteGroup 帖子保留并失去分组，全站缓存里的分组信息随之作废
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if _, err := s.repo.FindBySlug(ctx, slug); err != nil {
		return err
	}
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	invalidate(ctx, s.cache)
	return nil
}

// invalidate 缓存清理失败只记录日志，缓存最多在过期时间内保持陈旧
func invalidate(ctx context.Context, cache GlobalFeedCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Warn("invalidate global feed cache", "err", err)
	}
}
