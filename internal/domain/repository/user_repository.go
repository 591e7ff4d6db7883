package repository

import (
	"context"
	"errors"

	"goblog/internal/domain/entity"
)

// ErrNotFound is returned by lookups when no row matches; ErrDuplicate when
// an insert hits a uniqueness constraint. Implementations translate their
// driver errors into these sentinels.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the identity store. Create persists a fully
// populated user (the caller assigns ID and Password); Update persists every
// mutable field; UpdatePassword touches only the stored digest.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, storedDigest string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
