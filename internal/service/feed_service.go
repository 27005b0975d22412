package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
	"yatube/internal/repository/redis"
)

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeGroup
	ScopeAuthor
	ScopeFollowing
)

// Scope 选择信息流包含哪些帖子
type Scope struct {
	Kind     ScopeKind
	Slug     string
	Username string
	ViewerID uint64
}

func GlobalScope() Scope { return Scope{Kind: ScopeGlobal} }
func GroupScope(slug string) Scope { return Scope{Kind: ScopeGroup, Slug: slug} }
func AuthorScope(username string) Scope { return Scope{Kind: ScopeAuthor, Username: username} }
func FollowingScope(viewerID uint64) Scope { return Scope{Kind: ScopeFollowing, ViewerID: viewerID} }

// FeedPage 一页帖子及分页信息；按分组/作者浏览时带上对应的分组或作者
type FeedPage struct {
	Posts  []model.Post `json:"posts"`
	Page   pkg.PageMeta `json:"page"`
	Group  *model.Group `json:"group,omitempty"`
	Author *model.User  `json:"author,omitempty"`
}

// Profile 作者主页
type Profile struct {
	Author    *model.User `json:"author"`
	Feed      *FeedPage   `json:"feed"`
	PostCount int64       `json:"post_count"`
	Following bool        `json:"following"`
}

// lockWait 没抢到重建锁时，等待持锁者写回缓存的时间
const lockWait = 50 * time.Millisecond

type FeedService struct {
	posts   *database.PostRepository
	users   *database.UserRepository
	groups  *database.GroupRepository
	follows *database.FollowRepository
	pager   pkg.Paginator
	cache   GlobalFeedCache
	lock    Locker
}

func NewFeedService(
	posts *database.PostRepository,
	users *database.UserRepository,
	groups *database.GroupRepository,
	follows *database.FollowRepository,
	pageSize int,
	cache GlobalFeedCache,
	lock Locker,
) *FeedService {
	return &FeedService{
		posts:   posts,
		users:   users,
		groups:  groups,
		follows: follows,
		pager:   pkg.NewPaginator(pageSize),
		cache:   cache,
		lock:    lock,
	}
}

// Assemble 所有范围共用同一排序和分页规则，只有过滤条件不同
func (s *FeedService) Assemble(ctx context.Context, scope Scope, page int) (*FeedPage, error) {
	out := &FeedPage{Posts: []model.Post{}}
	var f database.PostFilter

	switch scope.Kind {
	case ScopeGlobal:
	case ScopeGroup:
		group, err := s.groups.FindBySlug(ctx, scope.Slug)
		if err != nil {
			return nil, err
		}
		f.GroupID = group.ID
		out.Group = group
	case ScopeAuthor:
		author, err := s.users.FindByUsername(ctx, scope.Username)
		if err != nil {
			return nil, err
		}
		f.AuthorID = author.ID
		out.Author = author
	case ScopeFollowing:
		// 匿名用户没有关注关系
		if scope.ViewerID == 0 {
			out.Page = s.pager.Meta(page, 0)
			return out, nil
		}
		f.FollowerID = scope.ViewerID
	default:
		return nil, fmt.Errorf("unknown feed scope %d", scope.Kind)
	}

	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	out.Page = s.pager.Meta(page, total)

	if !s.pager.InRange(page, total) {
		return out, nil
	}
	posts, err := s.posts.List(ctx, f, s.pager.Offset(page), s.pager.PageSize)
	if err != nil {
		return nil, err
	}
	out.Posts = posts
	return out, nil
}

// RenderGlobal 全站信息流的 JSON，走缓存；缓存不可用时直接渲染
func (s *FeedService) RenderGlobal(ctx context.Context, page int) ([]byte, error) {
	page = s.pager.Normalize(page)
	if s.cache == nil {
		return s.renderGlobal(ctx, page)
	}

	body, ok, err := s.cache.Get(ctx, page)
	if err != nil {
		slog.Warn("read global feed cache", "page", page, "err", err)
		return s.renderGlobal(ctx, page)
	}
	if ok {
		return body, nil
	}

	token := uuid.NewString()
	locked, err := s.acquire(ctx, token)
	if err != nil {
		slog.Warn("acquire global feed lock", "err", err)
		return s.renderGlobal(ctx, page)
	}
	if locked {
		defer func() {
			if s.lock == nil {
				return
			}
			if err := s.lock.Release(context.WithoutCancel(ctx), redis.GlobalFeedLockKey, token); err != nil {
				slog.Warn("release global feed lock", "err", err)
			}
		}()
		// 双重检查，等锁期间别人可能已经写回
		if body, ok, err := s.cache.Get(ctx, page); err == nil && ok {
			return body, nil
		}
		body, err := s.renderGlobal(ctx, page)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, page, body); err != nil {
			slog.Warn("fill global feed cache", "page", page, "err", err)
		}
		return body, nil
	}

	// 没抢到锁：稍等后再读一次，仍未命中就不走缓存直接渲染
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(lockWait):
	}
	if body, ok, err := s.cache.Get(ctx, page); err == nil && ok {
		return body, nil
	}
	return s.renderGlobal(ctx, page)
}

func (s *FeedService) acquire(ctx context.Context, token string) (bool, error) {
	if s.lock == nil {
		return true, nil
	}
	return s.lock.Acquire(ctx, redis.GlobalFeedLockKey, token)
}

func (s *FeedService) renderGlobal(ctx context.Context, page int) ([]byte, error) {
	feed, err := s.Assemble(ctx, GlobalScope(), page)
	if err != nil {
		return nil, err
	}
	return json.Marshal(feed)
}

// Profile 作者信息、作者信息流，以及 viewer 是否已关注
func (s *FeedService) Profile(ctx context.Context, viewerID uint64, username string, page int) (*Profile, error) {
	feed, err := s.Assemble(ctx, AuthorScope(username), page)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Author:    feed.Author,
		Feed:      feed,
		PostCount: feed.Page.TotalCount,
	}
	if viewerID != 0 && viewerID != feed.Author.ID {
		p.Following, err = s.follows.IsFollowing(ctx, viewerID, feed.Author.ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}
