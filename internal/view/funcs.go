// Package view 提供模板函数并加载内嵌的页面模板。
package view

import (
	"html/template"
	"io/fs"
	"time"

	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/markup"
)

// SummaryWords 是列表页摘要保留的词数。
const SummaryWords = 30

// FuncMap 返回页面模板使用的函数，日期与文章链接按 loc 计算。
func FuncMap(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	return template.FuncMap{
		"markdown": markup.MustRender,
		"summary":  markup.Summary,
		"truncateHTML": func(content template.HTML, n int) template.HTML {
			return template.HTML(markup.TruncateWordsHTML(string(content), n))
		},
		"postURL": func(post db.Post) string {
			return post.Path(loc)
		},
		"tagURL": func(tag db.Tag) string {
			return tag.Path()
		},
		"formatDate": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format(layout)
		},
		"statusLabel": db.StatusLabel,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// Load 解析 fsys 中匹配 patterns 的模板，模板名取文件名，因此文件名必须唯一。
func Load(fsys fs.FS, loc *time.Location, patterns ...string) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(loc)).ParseFS(fsys, patterns...)
}
