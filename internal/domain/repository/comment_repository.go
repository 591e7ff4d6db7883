package repository

import (
	"context"

	"goblog/internal/domain/entity"
)

// CommentRepository defines the comment store. Listings are newest-first.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Comment, error)
	Count(ctx context.Context) (int, error)
}
