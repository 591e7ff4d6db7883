package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"goblog/config"
	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
	"goblog/pkg/apperr"
	"goblog/pkg/helpers"
)

// CategoryService covers the category CRUD. Mutations are admin-only
// (enforced by middleware).
type CategoryService struct {
	Cats   repository.CategoryRepository
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewCategoryService(cats repository.CategoryRepository, logger *logrus.Logger, cfg *config.Config) *CategoryService {
	return &CategoryService{Cats: cats, Logger: logger, Cfg: cfg}
}

// CreateCategory adds a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "Name can not be empty.")
	}
	c := &entity.Category{ID: helpers.NextID(), Name: name}
	if err := s.Cats.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("name", "Category already exists.")
		}
		return nil, err
	}
	return c, nil
}

// GetCategory fetches a single category.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Cats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	return c, nil
}

// UpdateCategory renames a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "Name can not be empty.")
	}
	c, err := s.Cats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	c.Name = name
	if err := s.Cats.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("name", "Category already exists.")
		}
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category; blogs in it become uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Cats.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("category")
		}
		return err
	}
	return nil
}

// ListCategories returns every category, newest first (used for nav).
func (s *CategoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	cats, err := s.Cats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []*entity.Category{}
	}
	return cats, nil
}

// ListCategoriesManage returns one management page of categories.
func (s *CategoryService) ListCategoriesManage(ctx context.Context, pageIndex int) ([]*entity.Category, *helpers.Page, error) {
	total, err := s.Cats.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := helpers.NewPage(total, pageIndex, s.Cfg.ManagePageSize, s.Cfg.PageShow)
	if total == 0 {
		return []*entity.Category{}, p, nil
	}
	cats, err := s.Cats.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, nil, err
	}
	return cats, p, nil
}
