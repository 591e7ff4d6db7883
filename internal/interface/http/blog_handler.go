package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goblog/internal/application"
	"goblog/internal/domain/entity"
	"goblog/pkg/helpers"
	"goblog/pkg/response"
	"goblog/pkg/validation"
)

// BlogHandler serves the public reading surface and the management CRUD.
type BlogHandler struct {
	Blogs    *application.BlogService
	Comments *application.CommentService
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewBlogHandler(blogs *application.BlogService, comments *application.CommentService, accounts *application.AccountService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Blogs: blogs, Comments: comments, Accounts: accounts, Logger: logger}
}

type blogRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	CatName string `json:"cat_name"`
}

func blogPayload(b *entity.Blog) gin.H {
	return gin.H{
		"id":         b.ID,
		"user_id":    b.UserID,
		"user_name":  b.UserName,
		"user_image": b.UserImage,
		"cat_id":     b.CatID,
		"cat_name":   b.CatName,
		"title":      b.Title,
		"summary":    b.Summary,
		"content":    b.Content,
		"view_count": b.ViewCount,
		"created_at": b.CreatedAt,
	}
}

func blogListPayload(blogs []*entity.Blog) []gin.H {
	out := make([]gin.H, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogPayload(b))
	}
	return out
}

// List serves the public index, newest first, about page excluded.
func (h *BlogHandler) List(c *gin.Context) {
	blogs, page, err := h.Blogs.ListBlogs(c.Request.Context(), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogListPayload(blogs), "blogs", gin.H{"page": page})
}

// ListByCategory serves one category's posts.
func (h *BlogHandler) ListByCategory(c *gin.Context) {
	cat, blogs, page, err := h.Blogs.ListBlogsByCategory(c.Request.Context(), c.Param("id"), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"category": gin.H{"id": cat.ID, "name": cat.Name},
		"blogs":    blogListPayload(blogs),
	}, "blogs", gin.H{"page": page})
}

// Get serves a single post with its comments and bumps the view counter.
func (h *BlogHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	b, err := h.Blogs.GetBlog(ctx, c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	comments, err := h.Comments.ListBlogComments(ctx, b.ID)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"blog":     blogPayload(b),
		"comments": commentListPayload(comments),
	}, "blog", nil)
}

// About serves the special about-page entry.
func (h *BlogHandler) About(c *gin.Context) {
	b, err := h.Blogs.GetAbout(c.Request.Context())
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogPayload(b), "about", nil)
}

// Search runs a full-text query over title, summary, and content.
func (h *BlogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Blogs.SearchBlogs(c.Request.Context(), q, size)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// ListManage serves the management table, about entry included. Admin-only.
func (h *BlogHandler) ListManage(c *gin.Context) {
	blogs, page, err := h.Blogs.ListBlogsManage(c.Request.Context(), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogListPayload(blogs), "blogs", gin.H{"page": page})
}

// Create publishes a new post authored by the logged-in admin.
func (h *BlogHandler) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author, err := h.Accounts.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	b, err := h.Blogs.CreateBlog(c.Request.Context(), author, application.BlogInput{
		Title: req.Title, Summary: req.Summary, Content: req.Content, CatName: req.CatName,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, blogPayload(b), "blog created", nil)
}

// Update edits an existing post. Admin-only.
func (h *BlogHandler) Update(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Blogs.UpdateBlog(c.Request.Context(), c.Param("id"), application.BlogInput{
		Title: req.Title, Summary: req.Summary, Content: req.Content, CatName: req.CatName,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogPayload(b), "blog updated", nil)
}

// Delete removes a post. Admin-only.
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Blogs.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		writeAppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "blog deleted", nil)
}
