package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/service"
)

// ListComments 返回后台评论列表，可按审核状态、创建/更新日期与文章筛选
func (a *API) ListComments(c *gin.Context) {
	filter := service.CommentFilter{
		Active:  parseOptionalBool(c.Query("active")),
		Created: c.Query("created"),
		Updated: c.Query("updated"),
		Search:  c.Query("q"),
		PostID:  parseOptionalUint(c.Query("post_id")),
		Page:    c.Query("page"),
	}

	ctx := c.Request.Context()
	result, err := a.comments.List(ctx, filter)
	if err != nil {
		a.recordError(c, "list comments", err)
		respondError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}
	total, active, err := a.comments.Counts(ctx)
	if err != nil {
		a.recordError(c, "count comments", err)
		respondError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": result.Comments,
		"page":     pagePayload(result.Page),
		"counts": gin.H{
			"total":    total,
			"active":   active,
			"inactive": total - active,
		},
	})
}

// ActivateComment 让评论在文章页可见
func (a *API) ActivateComment(c *gin.Context) {
	a.setCommentActive(c, true)
}

// DeactivateComment 隐藏评论
func (a *API) DeactivateComment(c *gin.Context) {
	a.setCommentActive(c, false)
}

func (a *API) setCommentActive(c *gin.Context, active bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := a.comments.SetActive(c.Request.Context(), id, active)
	if err != nil {
		a.respondCommentError(c, err)
		return
	}

	message := "comment deactivated"
	if active {
		message = "comment activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "comment": comment})
}

// DeleteComment 删除评论
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := a.comments.Delete(c.Request.Context(), id); err != nil {
		a.respondCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func (a *API) respondCommentError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCommentNotFound) {
		respondError(c, http.StatusNotFound, "comment not found")
		return
	}
	a.recordError(c, "update comment", err)
	respondError(c, http.StatusInternalServerError, "failed to update comment")
}
