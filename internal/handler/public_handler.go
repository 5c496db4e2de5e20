package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/form"
	"github.com/machaira/blog/internal/markup"
	"github.com/machaira/blog/internal/service"
)

// ShowPostList 渲染已发布文章列表，每页 3 篇。
func (a *API) ShowPostList(c *gin.Context) {
	page, err := a.posts.ListPublished(c.Request.Context(), c.Query("page"))
	if err != nil {
		a.renderServerError(c, "list published posts", err)
		return
	}

	a.renderPublic(c, http.StatusOK, "post_list.html", gin.H{
		"title": a.site.Name,
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// ShowTagPostList 渲染某个标签下的已发布文章，标签不存在时返回 404。
func (a *API) ShowTagPostList(c *gin.Context) {
	tag, page, err := a.posts.ListByTag(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			a.renderNotFound(c)
			return
		}
		a.renderServerError(c, "list posts by tag", err)
		return
	}

	a.renderPublic(c, http.StatusOK, "post_list.html", gin.H{
		"title": "Posts tagged with " + tag.Name,
		"tag":   tag,
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// ShowPostDetail 按发布日期与 slug 渲染文章详情。
func (a *API) ShowPostDetail(c *gin.Context) {
	year, okYear := parsePositiveInt(c.Param("year"))
	month, okMonth := parsePositiveInt(c.Param("month"))
	day, okDay := parsePositiveInt(c.Param("day"))
	if !okYear || !okMonth || !okDay {
		a.renderNotFound(c)
		return
	}

	ctx := c.Request.Context()
	post, err := a.posts.GetByNaturalKey(ctx, year, month, day, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderNotFound(c)
			return
		}
		a.renderServerError(c, "load post", err)
		return
	}

	comments, err := a.comments.ListActive(ctx, post.ID)
	if err != nil {
		a.renderServerError(c, "list comments", err)
		return
	}

	similar, err := a.posts.Similar(ctx, post, service.SimilarLimit)
	if err != nil {
		a.renderServerError(c, "load similar posts", err)
		return
	}

	body, err := markup.Render(post.Body)
	if err != nil {
		a.renderServerError(c, "render markdown", err)
		return
	}

	a.renderPublic(c, http.StatusOK, "post_detail.html", gin.H{
		"title":    post.Title,
		"post":     post,
		"body":     body,
		"comments": comments,
		"similar":  similar,
		"form":     form.CommentForm{},
	})
}
