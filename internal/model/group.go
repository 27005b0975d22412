package model

// Group 帖子所属的主题分组，由管理员创建
type Group struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

func (g Group) String() string {
	return g.Title
}
