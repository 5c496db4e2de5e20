package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/config"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/form"
	"github.com/machaira/blog/internal/logging"
	"github.com/machaira/blog/internal/mail"
	"github.com/machaira/blog/internal/service"
	"github.com/machaira/blog/internal/syndication"
	"gorm.io/gorm"
)

// SidebarSize 是侧栏最新文章与最多评论文章的条数。
const SidebarSize = 5

const sidebarContextKey = "__sidebar"

// Options 汇总构造 API 所需的外部依赖。
type Options struct {
	Site         config.SiteConfig
	Location     *time.Location
	SearchConfig string
	Mailer       mail.Mailer
	MailFrom     string
	Logger       logging.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	posts    *service.PostService
	comments *service.CommentService
	tags     *service.TagService
	shares   *service.ShareService
	site     siteViewModel
	loc      *time.Location
	log      logging.Logger
}

type siteViewModel struct {
	Name    string
	BaseURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	site := siteViewModel{
		Name:    strings.TrimSpace(opts.Site.Name),
		BaseURL: strings.TrimRight(strings.TrimSpace(opts.Site.BaseURL), "/"),
	}
	if site.Name == "" {
		site.Name = syndication.FeedTitle
	}

	return &API{
		db:       gdb,
		posts:    service.NewPostService(gdb).WithLocation(loc).WithSearchConfig(opts.SearchConfig),
		comments: service.NewCommentService(gdb).WithLocation(loc),
		tags:     service.NewTagService(gdb),
		shares:   service.NewShareService(opts.Mailer, opts.MailFrom),
		site:     site,
		loc:      loc,
		log:      log,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Location 返回站点时区。
func (a *API) Location() *time.Location {
	return a.loc
}

// sidebar 计算公开页面侧栏数据，同一请求内只查询一次。
func (a *API) sidebar(c *gin.Context) gin.H {
	if cached, exists := c.Get(sidebarContextKey); exists {
		if data, ok := cached.(gin.H); ok {
			return data
		}
	}

	ctx := c.Request.Context()
	data := gin.H{"total": int64(0), "latest": []db.Post{}, "mostCommented": []db.Post{}}

	if total, err := a.posts.CountPublished(ctx); err != nil {
		a.recordError(c, "count published posts", err)
	} else {
		data["total"] = total
	}
	if latest, err := a.posts.Latest(ctx, SidebarSize); err != nil {
		a.recordError(c, "load latest posts", err)
	} else {
		data["latest"] = latest
	}
	if popular, err := a.posts.MostCommented(ctx, SidebarSize); err != nil {
		a.recordError(c, "load most commented posts", err)
	} else {
		data["mostCommented"] = popular
	}

	c.Set(sidebarContextKey, data)
	return data
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    a.site.Name,
			"baseUrl": a.site.BaseURL,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.site.Name
	}
	// 模板里直接调用 .errors.Has，键必须存在
	if _, exists := payload["errors"]; !exists {
		payload["errors"] = form.Errors(nil)
	}

	c.HTML(status, template, payload)
}

// renderPublic 在 renderHTML 基础上附加侧栏数据。
func (a *API) renderPublic(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["sidebar"]; !exists {
		payload["sidebar"] = a.sidebar(c)
	}
	a.renderHTML(c, status, template, payload)
}

// RenderHTML 在向模板渲染时自动附加站点名称。
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}

func (a *API) renderNotFound(c *gin.Context) {
	a.renderPublic(c, http.StatusNotFound, "404.html", gin.H{"title": "Page not found"})
}

func (a *API) renderServerError(c *gin.Context, action string, err error) {
	a.recordError(c, action, err)
	a.renderHTML(c, http.StatusInternalServerError, "500.html", gin.H{"title": "Server error"})
}

func (a *API) recordError(c *gin.Context, action string, err error) {
	_ = c.Error(err)
	a.log.Error("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, action, err)
}

// siteFor 返回生成绝对地址用的站点信息，未配置 base_url 时取请求的协议与主机。
func (a *API) siteFor(c *gin.Context) syndication.Site {
	return syndication.Site{BaseURL: a.baseURL(c), Location: a.loc}
}

func (a *API) baseURL(c *gin.Context) string {
	if a.site.BaseURL != "" {
		return a.site.BaseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); forwarded != "" {
		scheme = strings.ToLower(strings.SplitN(forwarded, ",", 2)[0])
	}
	return scheme + "://" + c.Request.Host
}

// NotFound 用于路由未命中时渲染公开的 404 页面。
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c)
}
