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

// CategoryHandler serves the public category list and the admin CRUD.
type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func categoryPayload(cat *entity.Category) gin.H {
	return gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"created_at": cat.CreatedAt,
	}
}

func categoryListPayload(cats []*entity.Category) []gin.H {
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryPayload(cat))
	}
	return out
}

// List serves every category for the site navigation.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryListPayload(cats), "categories", nil)
}

// ListManage serves the management category table. Admin-only.
func (h *CategoryHandler) ListManage(c *gin.Context) {
	cats, page, err := h.Svc.ListCategoriesManage(c.Request.Context(), helpers.ParsePageIndex(c.Query("page")))
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryListPayload(cats), "categories", gin.H{"page": page})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryPayload(cat), "category created", nil)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		writeAppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryPayload(cat), "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeAppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "category deleted", nil)
}
