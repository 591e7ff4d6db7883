package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"goblog/internal/container"
	handlers "goblog/internal/interface/http"
	"goblog/internal/interface/middleware"
	"goblog/pkg/helpers"
)

// ManageModule wires the admin management API under /api/manage. Every
// route requires an authenticated admin session.
type ManageModule struct {
	Accounts   *handlers.AccountHandler
	Blogs      *handlers.BlogHandler
	Comments   *handlers.CommentHandler
	Categories *handlers.CategoryHandler
	Uploads    *handlers.UploadHandler
	Tokens     *helpers.TokenManager
	CookieName string
}

func NewManageModule(accounts *handlers.AccountHandler, blogs *handlers.BlogHandler, comments *handlers.CommentHandler, cats *handlers.CategoryHandler, uploads *handlers.UploadHandler, tokens *helpers.TokenManager, cookieName string) *ManageModule {
	return &ManageModule{
		Accounts:   accounts,
		Blogs:      blogs,
		Comments:   comments,
		Categories: cats,
		Uploads:    uploads,
		Tokens:     tokens,
		CookieName: cookieName,
	}
}

func (m *ManageModule) Register(rg *gin.RouterGroup) {
	manage := rg.Group("/manage")
	manage.Use(middleware.Auth(container.GetRedis(), m.Tokens, m.CookieName))
	manage.Use(middleware.RequireAdmin())
	manage.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		manage.GET("/users", m.Accounts.ListUsers)
		manage.DELETE("/users/:id", m.Accounts.DeleteUser)

		manage.GET("/blogs", m.Blogs.ListManage)
		manage.POST("/blogs", m.Blogs.Create)
		manage.PUT("/blogs/:id", m.Blogs.Update)
		manage.DELETE("/blogs/:id", m.Blogs.Delete)

		manage.GET("/comments", m.Comments.ListManage)
		manage.DELETE("/comments/:id", m.Comments.Delete)

		manage.GET("/categories", m.Categories.ListManage)
		manage.POST("/categories", m.Categories.Create)
		manage.PUT("/categories/:id", m.Categories.Update)
		manage.DELETE("/categories/:id", m.Categories.Delete)

		manage.POST("/upload", m.Uploads.Upload)
	}
}
