package model

import "time"

// PostPreviewLen String() 截取的字符数
const PostPreviewLen = 15

type Post struct {
	ID       uint64  `gorm:"primaryKey;index:idx_post_time_id,priority:2,sort:desc" json:"id"`
	Text     string  `gorm:"type:text;not null" json:"text"`
	AuthorID uint64  `gorm:"not null;index:idx_post_author_time,priority:1" json:"author_id"`
	Author   User    `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint64 `gorm:"index:idx_post_group_time,priority:1" json:"group_id"`
	Group    *Group  `gorm:"constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string  `gorm:"size:255;not null;default:''" json:"image"`
	// 只在创建时写入
	CreatedAt time.Time `gorm:"<-:create;index:idx_post_time_id,priority:1,sort:desc;index:idx_post_author_time,priority:2;index:idx_post_group_time,priority:2" json:"created_at"`
}

func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > PostPreviewLen {
		return string(r[:PostPreviewLen])
	}
	return p.Text
}
