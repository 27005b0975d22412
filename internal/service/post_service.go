package service

import (
	"context"
	"errors"
	"log/slog"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
)

var ErrImageStoreDisabled = errors.New("image storage is not configured")

// PostInput 创建与编辑共用；编辑时 Image 为空表示保留原图
type PostInput struct {
	Text    string `validate:"notblank"`
	GroupID *uint64
	Image   *pkg.Upload
}

// PostDetail 帖子详情页
type PostDetail struct {
	Post            *model.Post     `json:"post"`
	Comments        []model.Comment `json:"comments"`
	AuthorPostCount int64           `json:"author_post_count"`
}

type PostService struct {
	repo     *database.PostRepository
	groups   *database.GroupRepository
	users    *database.UserRepository
	comments *database.CommentRepository
	images   pkg.ImageStore
	cache    GlobalFeedCache
}

func NewPostService(
	repo *database.PostRepository,
	groups *database.GroupRepository,
	users *database.UserRepository,
	comments *database.CommentRepository,
	images pkg.ImageStore,
	cache GlobalFeedCache,
) *PostService {
	return &PostService{
		repo:     repo,
		groups:   groups,
		users:    users,
		comments: comments,
		images:   images,
		cache:    cache,
	}
}

func (s *PostService) CreatePost(ctx context.Context, authorID uint64, in PostInput) (*model.Post, error) {
	if authorID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}

	post := &model.Post{
		Text:     in.Text,
		AuthorID: authorID,
		GroupID:  in.GroupID,
	}
	if in.Image != nil {
		ref, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = ref
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.dropImage(ctx, post.Image)
		return nil, err
	}
	invalidate(ctx, s.cache)
	slog.Info("post created", "post_id", post.ID, "author_id", authorID)

	return s.repo.FindByID(ctx, post.ID)
}

// EditPost 只有作者本人可以编辑
func (s *PostService) EditPost(ctx context.Context, operatorID, postID uint64, in PostInput) (*model.Post, error) {
	if operatorID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != operatorID {
		return nil, pkg.ErrForbidden
	}
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	var uploaded string
	if in.Image != nil {
		ref, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = ref
		uploaded = ref
	}

	if err := s.repo.Update(ctx, post); err != nil {
		s.dropImage(ctx, uploaded)
		return nil, err
	}
	invalidate(ctx, s.cache)

	return s.repo.FindByID(ctx, postID)
}

// DeletePost 作者或管理员；评论随外键级联删除
func (s *PostService) DeletePost(ctx context.Context, operatorID, postID uint64) error {
	if operatorID == 0 {
		return pkg.ErrUnauthenticated
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != operatorID {
		operator, err := s.users.FindByID(ctx, operatorID)
		if err != nil {
			return err
		}
		if !operator.IsAdmin() {
			return pkg.ErrForbidden
		}
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}
	invalidate(ctx, s.cache)
	slog.Info("post deleted", "post_id", postID, "operator_id", operatorID)
	return nil
}

// GetPost 帖子、评论以及作者的帖子总数
func (s *PostService) GetPost(ctx context.Context, postID uint64) (*PostDetail, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, database.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

func (s *PostService) check(ctx context.Context, in PostInput) error {
	if err := pkg.Validate(in); err != nil {
		return err
	}
	if in.GroupID == nil {
		return nil
	}
	if _, err := s.groups.FindByID(ctx, *in.GroupID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.NewValidationError("group", "unknown group")
		}
		return err
	}
	return nil
}

func (s *PostService) saveImage(ctx context.Context, up *pkg.Upload) (string, error) {
	if s.images == nil {
		return "", ErrImageStoreDisabled
	}
	return s.images.Save(ctx, up)
}

// dropImage 删除没有写进帖子的图片，失败只记录日志
func (s *PostService) dropImage(ctx context.Context, ref string) {
	if ref == "" || s.images == nil {
		return
	}
	if err := s.images.Delete(context.WithoutCancel(ctx), ref); err != nil {
		slog.Warn("remove orphaned image", "ref", ref, "err", err)
	}
}
