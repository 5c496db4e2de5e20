package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/service"
)

type postRequest struct {
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	Body     string     `json:"body"`
	AuthorID uint       `json:"author_id"`
	Publish  *time.Time `json:"publish"`
	Status   string     `json:"status"`
	Tags     []string   `json:"tags"`
	// TagList 允许以 "go, web" 这样的逗号或空格分隔字符串提交标签
	TagList string `json:"tag_list"`
}

// toInput 保留 tags 的 nil 与空切片之分：PUT 省略 tags 时沿用原标签，传 [] 时清空。
func (r postRequest) toInput(fallbackAuthor uint) service.PostInput {
	tags := r.Tags
	if tags == nil && r.TagList != "" {
		tags = service.ParseTagNames(r.TagList)
	}
	author := r.AuthorID
	if author == 0 {
		author = fallbackAuthor
	}
	return service.PostInput{
		Title:    r.Title,
		Slug:     r.Slug,
		Body:     r.Body,
		AuthorID: author,
		Publish:  r.Publish,
		Status:   r.Status,
		Tags:     tags,
	}
}

// ListPosts 返回后台文章列表，支持搜索、状态、作者与发布日期筛选
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:   c.Query("q"),
		Status:   c.Query("status"),
		AuthorID: parseOptionalUint(c.Query("author_id")),
		Created:  c.Query("created"),
		Page:     c.Query("page"),
	}
	filter.Year, _ = parsePositiveInt(c.Query("year"))
	filter.Month, _ = parsePositiveInt(c.Query("month"))
	filter.Day, _ = parsePositiveInt(c.Query("day"))

	result, err := a.posts.List(c.Request.Context(), filter)
	if err != nil {
		a.recordError(c, "list posts", err)
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": result.Posts,
		"page":  pagePayload(result.Page),
		"counts": gin.H{
			"published": result.PublishedCount,
			"draft":     result.DraftCount,
		},
	})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		a.respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost 创建新文章，未指定作者时使用当前登录用户
func (a *API) CreatePost(c *gin.Context) {
	var payload postRequest
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	post, err := a.posts.Create(c.Request.Context(), payload.toInput(currentUserID(c)))
	if err != nil {
		a.respondPostError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "post created", "post": post})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var payload postRequest
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	post, err := a.posts.Update(c.Request.Context(), id, payload.toInput(0))
	if err != nil {
		a.respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post updated", "post": post})
}

// DeletePost 删除文章及其评论
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.posts.Delete(c.Request.Context(), id); err != nil {
		a.respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (a *API) respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrInvalidPostInput), errors.Is(err, service.ErrInvalidTagInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, err.Error())
	default:
		a.recordError(c, "save post", err)
		respondError(c, http.StatusInternalServerError, "failed to save post")
	}
}
