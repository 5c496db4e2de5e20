package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/service"
)

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetTags 获取标签列表及每个标签的文章数
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List(c.Request.Context())
	if err != nil {
		a.recordError(c, "list tags", err)
		respondError(c, http.StatusInternalServerError, "failed to list tags")
		return
	}

	response := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		response = append(response, gin.H{
			"id":         tag.ID,
			"name":       tag.Name,
			"slug":       tag.Slug,
			"post_count": tag.PostCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"tags": response})
}

// CreateTag 创建新标签
func (a *API) CreateTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req, "tag name is required") {
		return
	}

	tag, err := a.tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		a.respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "tag created", "tag": tag})
}

// UpdateTag 重命名标签
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req tagRequest
	if !bindJSON(c, &req, "tag name is required") {
		return
	}

	tag, err := a.tags.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		a.respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag updated", "tag": tag})
}

// DeleteTag 删除标签，关联的文章保留
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := a.tags.Delete(c.Request.Context(), id); err != nil {
		a.respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}

func (a *API) respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTagExists):
		respondError(c, http.StatusConflict, "tag already exists")
	case errors.Is(err, service.ErrInvalidTagInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTagNotFound):
		respondError(c, http.StatusNotFound, "tag not found")
	default:
		a.recordError(c, "save tag", err)
		respondError(c, http.StatusInternalServerError, "failed to save tag")
	}
}
