package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/form"
)

const shareDispatchFailed = "The e-mail could not be sent. Please try again later."

// SharePost 渲染推荐表单，POST 校验通过后发送推荐邮件。
func (a *API) SharePost(c *gin.Context) {
	post, ok := a.loadPublishedPost(c)
	if !ok {
		return
	}

	data := gin.H{
		"title": "Share " + post.Title,
		"post":  post,
		"form":  form.ShareForm{},
		"sent":  false,
	}
	if c.Request.Method != http.MethodPost {
		a.renderPublic(c, http.StatusOK, "share.html", data)
		return
	}

	var input form.ShareForm
	if err := c.ShouldBind(&input); err != nil {
		data["errors"] = form.Errors{"__all__": invalidSubmission}
		a.renderPublic(c, http.StatusBadRequest, "share.html", data)
		return
	}
	errs := form.Validate(&input)
	data["form"] = input
	if !errs.Valid() {
		data["errors"] = errs
		a.renderPublic(c, http.StatusBadRequest, "share.html", data)
		return
	}

	postURL := a.siteFor(c).AbsoluteURL(post.Path(a.loc))
	if err := a.shares.Share(c.Request.Context(), *post, postURL, input); err != nil {
		a.recordError(c, "share post", err)
		data["errors"] = form.Errors{"__all__": shareDispatchFailed}
		a.renderPublic(c, http.StatusBadGateway, "share.html", data)
		return
	}
	a.log.Info("post %d shared with %s", post.ID, input.To)

	data["sent"] = true
	a.renderPublic(c, http.StatusOK, "share.html", data)
}
