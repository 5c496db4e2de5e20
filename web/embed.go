// Package web 内嵌页面模板与静态资源，部署时只需要一个二进制。
package web

import "embed"

// Assets 包含 template/ 与 static/ 两个目录。
//
//go:embed template static
var Assets embed.FS

// TemplatePatterns 是 view.Load 使用的模板路径。
var TemplatePatterns = []string{
	"template/shared/*.html",
	"template/blog/*.html",
	"template/admin/*.html",
}
