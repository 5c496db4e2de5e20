package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/form"
)

// SearchPosts 全文检索已发布文章，缺少 query 参数时只渲染空表单。
func (a *API) SearchPosts(c *gin.Context) {
	data := gin.H{
		"title":    "Search",
		"form":     form.SearchForm{},
		"query":    "",
		"results":  []db.Post{},
		"searched": false,
	}

	raw, present := c.GetQuery("query")
	if !present {
		a.renderPublic(c, http.StatusOK, "search.html", data)
		return
	}

	input := form.SearchForm{Query: raw}
	errs := form.Validate(&input)
	data["form"] = input
	if !errs.Valid() {
		data["errors"] = errs
		a.renderPublic(c, http.StatusOK, "search.html", data)
		return
	}

	results, err := a.posts.Search(c.Request.Context(), input.Query)
	if err != nil {
		a.renderServerError(c, "search posts", err)
		return
	}

	data["query"] = input.Query
	data["results"] = results
	data["searched"] = true
	a.renderPublic(c, http.StatusOK, "search.html", data)
}
