package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"goblog/internal/container"
	handlers "goblog/internal/interface/http"
	"goblog/internal/interface/middleware"
	"goblog/pkg/helpers"
)

// BlogModule wires the public reading surface.
// Public: GET /api/blogs, GET /api/blogs/:id, GET /api/about,
// GET /api/categories, GET /api/categories/:id/blogs, GET /api/search
// Protected: POST /api/blogs/:id/comments
type BlogModule struct {
	Blogs      *handlers.BlogHandler
	Categories *handlers.CategoryHandler
	Comments   *handlers.CommentHandler
	Tokens     *helpers.TokenManager
	CookieName string
}

func NewBlogModule(blogs *handlers.BlogHandler, cats *handlers.CategoryHandler, comments *handlers.CommentHandler, tokens *helpers.TokenManager, cookieName string) *BlogModule {
	return &BlogModule{Blogs: blogs, Categories: cats, Comments: comments, Tokens: tokens, CookieName: cookieName}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/blogs", readLimiter, m.Blogs.List)
	rg.GET("/blogs/:id", readLimiter, m.Blogs.Get)
	rg.GET("/about", readLimiter, m.Blogs.About)
	rg.GET("/categories", readLimiter, m.Categories.List)
	rg.GET("/categories/:id/blogs", readLimiter, m.Blogs.ListByCategory)
	rg.GET("/search", searchLimiter, m.Blogs.Search)

	// Commenting requires a session.
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.Tokens, m.CookieName))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/blogs/:id/comments", m.Comments.Create)
	}
}
