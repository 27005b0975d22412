package model

import "time"

// Follow 有向关注边 user -> author。
// 唯一约束和不可自关注都由数据库保证。
type Follow struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_follow_user_author,priority:1;check:chk_follow_not_self,user_id <> author_id" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint64    `gorm:"not null;index:idx_follow_author;uniqueIndex:uk_follow_user_author,priority:2" json:"author_id"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follows"
}
