package syndication

import (
	"io"

	"github.com/machaira/blog/internal/db"
	"github.com/snabb/sitemap"
)

// 文章条目的抓取提示。
const (
	ChangeFreq = sitemap.Weekly
	Priority   = float32(0.9)
)

// BuildSitemap 为每篇已发布文章生成一个条目，lastmod 取站点时区下的更新时间。
func BuildSitemap(site Site, posts []db.Post) *sitemap.Sitemap {
	sm := sitemap.New()
	for _, post := range posts {
		entry := &sitemap.URL{
			Loc:        site.AbsoluteURL(post.Path(site.location())),
			ChangeFreq: ChangeFreq,
			Priority:   Priority,
		}
		if !post.UpdatedAt.IsZero() {
			updated := post.UpdatedAt.In(site.location())
			entry.LastMod = &updated
		}
		sm.Add(entry)
	}
	return sm
}

// WriteSitemap 写出带 XML 声明的 sitemap 文档。
func WriteSitemap(w io.Writer, site Site, posts []db.Post) error {
	_, err := BuildSitemap(site, posts).WriteTo(w)
	return err
}
