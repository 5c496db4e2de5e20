// Package markup 负责把文章的 Markdown 正文渲染为安全的 HTML。
package markup

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Render 把 Markdown 转成经过 UGC 策略清洗的 HTML。
func Render(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// MustRender 渲染失败时返回转义后的原文，供模板函数使用。
func MustRender(content string) template.HTML {
	out, err := Render(content)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return out
}

// Summary 渲染 Markdown 后保留前 n 个词，用于列表页与订阅摘要。
func Summary(content string, n int) template.HTML {
	return template.HTML(TruncateWordsHTML(string(MustRender(content)), n))
}
