package repository

import (
	"context"

	"goblog/internal/domain/entity"
)

// BlogFilter narrows blog listings. Zero value means "all posts except the
// about page".
type BlogFilter struct {
	CatID        string
	IncludeAbout bool
}

// BlogRepository defines the blog store. Listings are newest-first.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	GetByTitle(ctx context.Context, title string) (*entity.Blog, error)
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BlogFilter, limit, offset int) ([]*entity.Blog, error)
	Count(ctx context.Context, f BlogFilter) (int, error)
	IncrementViewCount(ctx context.Context, id string) error
}
