package database

import (
	"context"

	"gorm.io/gorm"

	"yatube/internal/model"
)

type GroupRepository struct {
	DB *gorm.DB
}

func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return translate(r.DB.WithContext(ctx).Create(g).Error, "create group")
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var group model.Group
	if err := r.DB.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "find group")
	}
	return &group, nil
}

func (r *GroupRepository) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translate(err, "find group "+slug)
	}
	return &group, nil
}

func (r *GroupRepository) List(ctx context.Context) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.WithContext(ctx).Order("title ASC, id ASC").Find(&list).Error
	return list, translate(err, "list groups")
}

// DeleteBySlug 帖子保留，group_id 由外键置空；不存在也视为成功
func (r *GroupRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return translate(r.DB.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Group{}).Error, "delete group")
}
