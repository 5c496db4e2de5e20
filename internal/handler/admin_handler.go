package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/db"
	"gorm.io/gorm"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "username"
	loginFailed     = "Please enter the correct username and password for a staff account."
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
	})
}

// Login 校验用户名密码，只允许职员账号登录后台
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var user db.User
	err := a.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		a.renderServerError(c, "load user", err)
		return
	}
	if err != nil || !user.IsStaff || !user.CheckPassword(password) {
		a.log.Warn("failed admin login for %q", username)
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":    "Log in",
			"error":    loginFailed,
			"username": username,
		})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	if err := session.Save(); err != nil {
		a.renderServerError(c, "save session", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	session := sessions.Default(c)

	published, draft, err := a.posts.Counts(ctx)
	if err != nil {
		a.renderServerError(c, "count posts", err)
		return
	}
	totalComments, activeComments, err := a.comments.Counts(ctx)
	if err != nil {
		a.renderServerError(c, "count comments", err)
		return
	}
	tags, err := a.tags.List(ctx)
	if err != nil {
		a.renderServerError(c, "list tags", err)
		return
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":          "Dashboard",
		"username":       session.Get(sessionUsername),
		"publishedCount": published,
		"draftCount":     draft,
		"commentCount":   totalComments,
		"activeComments": activeComments,
		"tagCount":       len(tags),
	})
}

// AuthRequired 校验后台会话，API 请求返回 401，页面请求跳转登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserID) == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api") {
				respondError(c, http.StatusUnauthorized, "authentication required")
			} else {
				c.Redirect(http.StatusFound, "/admin/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID 返回会话中的用户 id，未登录时为 0
func currentUserID(c *gin.Context) uint {
	switch v := sessions.Default(c).Get(sessionUserID).(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	default:
		return 0
	}
}
