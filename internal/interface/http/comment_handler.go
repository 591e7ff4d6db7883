package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goblog/internal/application"
	"goblog/internal/domain/entity"
	"goblog/pkg/helpers"
	"goblog/pkg/response"
	"goblog/pkg/validation"
)

// CommentHandler serves comment creation for logged-in readers and the
// management listing/deletion for admins.
type CommentHandler struct {
	Svc      *application.CommentService
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, accounts *application.AccountService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Accounts: accounts, Logger: logger}
}

type commentRequest struct {
	Content string `json:"content"`
}

func commentPayload(cm *entity.Comment) gin.H {
	return gin.H{
		"id":         cm.ID,
		"blog_id":    cm.BlogID,
		"user_id":    cm.UserID,
		"user_name":  cm.UserName,
		"user_image": cm.UserImage,
		"content":    cm.Content,
		"created_at": cm.CreatedAt,
	}
}

func commentListPayload(comments []*entity.Comment) []gin.H {
	out := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentPayload(cm))
	}
	return out
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author, err := h.Accounts.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	cm, err := h.Svc.CreateComment(c.Request.Context(), author, c.Param("id"), req.Content)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, commentPayload(cm), "comment created", nil)
}

// ListManage serves the management comment table. Admin-only.
func (h *CommentHandler) ListManage(c *gin.Context) {
	comments, page, err := h.Svc.ListComments(c.Request.Context(), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, commentListPayload(comments), "comments", gin.H{"page": page})
}

// Delete removes a comment. Admin-only.
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		writeAppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
