package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

// PostFilter 为零的字段不参与过滤；全零即全站
type PostFilter struct {
	AuthorID   uint64
	GroupID    uint64
	FollowerID uint64 // 只看该用户关注的作者
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(post).Error, "create post")
}

// FindByID 带作者和分组
func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "find post")
	}
	return &post, nil
}

// Update 只改正文、分组、图片；created_at 不可写
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	err := r.DB.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	return translate(err, "update post")
}

// Delete 硬删除，评论级联
func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return translate(r.DB.WithContext(ctx).Delete(&model.Post{}, id).Error, "delete post")
}

// List 所有列表统一按 created_at DESC, id DESC 排序
func (r *PostRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.scoped(ctx, f).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, translate(err, "list posts")
}

func (r *PostRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, translate(err, "count posts")
}

func (r *PostRepository) scoped(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.Post{})
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.GroupID != 0 {
		q = q.Where("posts.group_id = ?", f.GroupID)
	}
	if f.FollowerID != 0 {
		q = q.Where("posts.author_id IN (?)", followedAuthorIDs(r.DB.WithContext(ctx), f.FollowerID))
	}
	return q
}
