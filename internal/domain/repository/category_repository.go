package repository

import (
	"context"

	"goblog/internal/domain/entity"
)

// CategoryRepository defines the category store. Listings are newest-first.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Category, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Count(ctx context.Context) (int, error)
}
