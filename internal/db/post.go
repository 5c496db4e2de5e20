package db

import (
	"fmt"
	"time"
)

// 文章状态码，沿用两位缩写存储。
const (
	StatusDraft     = "DF"
	StatusPublished = "PB"
)

var statusLabels = map[string]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
}

// Post 定义了文章模型
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Slug      string    `gorm:"size:250;not null;index" json:"slug"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `json:"author"`
	Publish   time.Time `gorm:"not null;index" json:"publish"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
	Status    string    `gorm:"size:2;not null;default:DF;index" json:"status"`
	Tags      []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	Comments  []Comment `json:"-"`

	// 只读的聚合列，由相似文章与评论排行查询填充。
	SharedTags    int64 `gorm:"->;-:migration" json:"-"`
	TotalComments int64 `gorm:"->;-:migration" json:"-"`
}

// IsPublished 判断文章是否已发布。
func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// StatusLabel 返回状态的可读名称。
func (p Post) StatusLabel() string {
	return StatusLabel(p.Status)
}

// StatusLabel 返回状态码对应的名称，未知状态原样返回。
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// ValidStatus 判断状态码是否合法。
func ValidStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

// Path 返回文章详情页的规范路径，日期按站点时区计算。
func (p Post) Path(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := p.Publish.In(loc)
	return fmt.Sprintf("/blog/posts/%d/%d/%d/%s/", local.Year(), int(local.Month()), local.Day(), p.Slug)
}

// TagIDs 返回文章已加载标签的 ID。
func (p Post) TagIDs() []uint {
	ids := make([]uint, 0, len(p.Tags))
	for _, tag := range p.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
