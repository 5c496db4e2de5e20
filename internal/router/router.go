package router

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/handler"
	"github.com/machaira/blog/internal/logging"
	"github.com/machaira/blog/internal/view"
	"github.com/machaira/blog/web"
)

// SessionName 是后台会话 cookie 的名称。
const SessionName = "machaira_session"

// Options 配置路由使用的会话密钥与日志。
type Options struct {
	SessionSecret string
	Logger        logging.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	secret := strings.TrimSpace(opts.SessionSecret)
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), RequestLogger(log.Named("http")), Recovery(log.Named("http")))

	// 配置会话中间件
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionName, store))

	// 加载内嵌模板
	tmpl, err := view.Load(web.Assets, api.Location(), web.TemplatePatterns...)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	static, err := fs.Sub(web.Assets, "static")
	if err != nil {
		return nil, fmt.Errorf("load static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.NoRoute(api.NotFound)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/blog/")
	})
	r.GET("/healthz", api.HealthCheck)
	r.GET("/sitemap.xml", api.ShowSitemap)

	// 公开博客路由
	blog := r.Group("/blog")
	{
		blog.GET("/", api.ShowPostList)
		blog.GET("/tag/:slug/", api.ShowTagPostList)
		blog.GET("/posts/:year/:month/:day/:slug/", api.ShowPostDetail)
		blog.GET("/share/:id/", api.SharePost)
		blog.POST("/share/:id/", api.SharePost)
		blog.POST("/comment/:id/", api.SubmitComment)
		blog.GET("/search/", api.SearchPosts)
		blog.GET("/feed/", api.ShowFeed)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/posts", api.ListPosts)
				apiGroup.GET("/posts/:id", api.GetPost)
				apiGroup.POST("/posts", api.CreatePost)
				apiGroup.PUT("/posts/:id", api.UpdatePost)
				apiGroup.DELETE("/posts/:id", api.DeletePost)

				apiGroup.GET("/comments", api.ListComments)
				apiGroup.POST("/comments/:id/activate", api.ActivateComment)
				apiGroup.POST("/comments/:id/deactivate", api.DeactivateComment)
				apiGroup.DELETE("/comments/:id", api.DeleteComment)

				apiGroup.GET("/tags", api.GetTags)
				apiGroup.POST("/tags", api.CreateTag)
				apiGroup.PUT("/tags/:id", api.UpdateTag)
				apiGroup.DELETE("/tags/:id", api.DeleteTag)
			}
		}
	}

	return r, nil
}
