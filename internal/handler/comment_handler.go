package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/form"
	"github.com/machaira/blog/internal/service"
)

const invalidSubmission = "The submitted form could not be read."

// loadPublishedPost 解析 :id 并加载已发布文章，失败时已写出响应。
func (a *API) loadPublishedPost(c *gin.Context) (*db.Post, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return nil, false
	}

	post, err := a.posts.GetPublished(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderNotFound(c)
			return nil, false
		}
		a.renderServerError(c, "load post", err)
		return nil, false
	}
	return post, true
}

// SubmitComment 保存文章评论，只接受 POST。
func (a *API) SubmitComment(c *gin.Context) {
	post, ok := a.loadPublishedPost(c)
	if !ok {
		return
	}

	var input form.CommentForm
	var errs form.Errors
	if err := c.ShouldBind(&input); err != nil {
		errs = form.Errors{"__all__": invalidSubmission}
	} else {
		errs = form.Validate(&input)
	}

	if !errs.Valid() {
		a.renderPublic(c, http.StatusBadRequest, "comment.html", gin.H{
			"title":  "Add a comment",
			"post":   post,
			"form":   input,
			"errors": errs,
		})
		return
	}

	comment, err := a.comments.Create(c.Request.Context(), post.ID, input)
	if err != nil {
		a.renderServerError(c, "create comment", err)
		return
	}
	a.log.Info("comment %d added to post %d", comment.ID, post.ID)

	a.renderPublic(c, http.StatusOK, "comment.html", gin.H{
		"title":   "Comment added",
		"post":    post,
		"form":    input,
		"comment": comment,
	})
}
