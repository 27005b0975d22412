package database

import (
	"context"

	"gorm.io/gorm"

	"yatube/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error, "create user")
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err, "find user "+username)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, newPassword string) error {
	return translate(r.DB.WithContext(ctx).Model(user).Update("password", newPassword).Error, "update password")
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint64, role int) error {
	tx := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if tx.Error != nil {
		return translate(tx.Error, "update role")
	}
	if tx.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update role")
	}
	return nil
}

// Delete 硬删除，帖子、评论、关注关系由外键级联删除
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return translate(r.DB.WithContext(ctx).Delete(&model.User{}, id).Error, "delete user")
}
