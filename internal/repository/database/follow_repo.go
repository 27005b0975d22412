package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/model"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Follow 幂等插入：唯一索引 (user_id, author_id) 冲突时不报错，changed=false。
// 自己关注自己由 check 约束拒绝，返回 ErrConstraintViolation。
func (r *FollowRepository) Follow(ctx context.Context, userID, authorID uint64) (bool, error) {
	tx := r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(&model.Follow{UserID: userID, AuthorID: authorID})
	if tx.Error != nil {
		return false, translate(tx.Error, "follow")
	}
	return tx.RowsAffected > 0, nil
}

// Unfollow 不存在的关系直接返回 changed=false
func (r *FollowRepository) Unfollow(ctx context.Context, userID, authorID uint64) (bool, error) {
	tx := r.DB.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	if tx.Error != nil {
		return false, translate(tx.Error, "unfollow")
	}
	return tx.RowsAffected > 0, nil
}

// IsFollowing 判断是否关注
func (r *FollowRepository) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error; err != nil {
		return false, translate(err, "is following")
	}
	return n > 0, nil
}

// FollowedAuthors 关注的作者集合，按用户名排序
func (r *FollowRepository) FollowedAuthors(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("id IN (?)", followedAuthorIDs(r.DB.WithContext(ctx), userID)).
		Order("username ASC").
		Find(&users).Error
	return users, translate(err, "followed authors")
}

// ListFollowings 获取关注列表，id 倒序游标
func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return r.list(ctx, "user_id = ?", userID, cursor, limit)
}

// ListFollowers 获取粉丝列表
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return r.list(ctx, "author_id = ?", userID, cursor, limit)
}

func (r *FollowRepository) list(ctx context.Context, cond string, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).Where(cond, userID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	// 多取一条判断是否还有下一页
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, translate(err, "list follows")
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// followedAuthorIDs 子查询：userID 关注的 author_id
func followedAuthorIDs(db *gorm.DB, userID uint64) *gorm.DB {
	return db.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", userID)
}
