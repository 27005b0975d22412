package model

import "time"

// Comment post/author 都允许为空，与 follow 不同
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    *uint64   `gorm:"index" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  *uint64   `gorm:"index" json:"author_id"`
	Author    *User     `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

func (c Comment) String() string {
	return c.Text
}
