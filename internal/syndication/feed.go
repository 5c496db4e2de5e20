// Package syndication 生成最新文章的 RSS 订阅和全站 sitemap。
package syndication

import (
	"io"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/markup"
)

const (
	FeedTitle       = "My blog"
	FeedDescription = "New posts of my blog."
	// FeedSize 是订阅中包含的文章数。
	FeedSize = 5
	// SummaryWords 是订阅条目摘要保留的词数。
	SummaryWords = 30
)

// Site 描述生成绝对地址所需的站点信息。
type Site struct {
	BaseURL  string
	Location *time.Location
}

// AbsoluteURL 把站内路径拼成绝对地址。
func (s Site) AbsoluteURL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

func (s Site) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// BuildFeed 用已按发布时间倒序排列的文章构造订阅。
func BuildFeed(site Site, posts []db.Post) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       FeedTitle,
		Link:        &feeds.Link{Href: site.AbsoluteURL("/blog/")},
		Description: FeedDescription,
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].Publish
	}

	for _, post := range posts {
		link := site.AbsoluteURL(post.Path(site.location()))
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: string(markup.Summary(post.Body, SummaryWords)),
			Author:      authorOf(post),
			Created:     post.Publish,
		})
	}
	return feed
}

// WriteRSS 以 RSS 2.0 格式写出订阅。
func WriteRSS(w io.Writer, site Site, posts []db.Post) error {
	return BuildFeed(site, posts).WriteRss(w)
}

func authorOf(post db.Post) *feeds.Author {
	if post.Author.ID == 0 {
		return nil
	}
	return &feeds.Author{Name: post.Author.Username, Email: post.Author.Email}
}
