package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/pagination"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parsePositiveInt 解析路径中的年月日，非正整数返回 false。
func parsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseOptionalUint 解析查询参数，空值或非法值视为 0。
func parseOptionalUint(raw string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// parseOptionalBool 解析 true/false 查询参数，其他值返回 nil。
func parseOptionalBool(raw string) *bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}

func pagePayload(page pagination.Page) gin.H {
	return gin.H{
		"number":       page.Number,
		"num_pages":    page.NumPages,
		"count":        page.Count,
		"per_page":     page.PerPage,
		"has_next":     page.HasNext(),
		"has_previous": page.HasPrevious(),
	}
}
