package db

import "fmt"

// Tag 定义了标签模型，多篇文章共享同一标签。
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Posts []Post `gorm:"many2many:post_tags;" json:"-"`

	// PostCount 只在标签列表查询中填充。
	PostCount int64 `gorm:"->;-:migration" json:"post_count"`
}

// Path 返回标签文章列表的路径。
func (t Tag) Path() string {
	return fmt.Sprintf("/blog/tag/%s/", t.Slug)
}
