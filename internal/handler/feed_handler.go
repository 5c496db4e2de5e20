package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/syndication"
)

// ShowFeed 输出最新 5 篇已发布文章的 RSS。
func (a *API) ShowFeed(c *gin.Context) {
	posts, err := a.posts.Latest(c.Request.Context(), syndication.FeedSize)
	if err != nil {
		a.recordError(c, "load feed posts", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}

	var buf bytes.Buffer
	if err := syndication.WriteRSS(&buf, a.siteFor(c), posts); err != nil {
		a.recordError(c, "write feed", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", buf.Bytes())
}

// ShowSitemap 输出全部已发布文章的 sitemap。
func (a *API) ShowSitemap(c *gin.Context) {
	posts, err := a.posts.ListAllPublished(c.Request.Context())
	if err != nil {
		a.recordError(c, "load sitemap posts", err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}

	var buf bytes.Buffer
	if err := syndication.WriteSitemap(&buf, a.siteFor(c), posts); err != nil {
		a.recordError(c, "write sitemap", err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}
