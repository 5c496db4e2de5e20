package db

import "time"

// Comment 定义了文章评论模型
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      *Post     `json:"post,omitempty"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"updated"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
}
