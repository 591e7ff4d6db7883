package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `id, blog_id, user_id, user_name, user_image, content, created_at`

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, blog_id, user_id, user_name, user_image, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, c.ID, c.BlogID, c.UserID, c.UserName, c.UserImage, c.Content)
	return row.Scan(&c.CreatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+commentColumns+` FROM comments WHERE id = $1
	`, id).Scan(&c.ID, &c.BlogID, &c.UserID, &c.UserName, &c.UserImage, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE blog_id = $1
		ORDER BY created_at DESC
	`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (r *CommentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.UserName, &c.UserImage, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments`).Scan(&n)
	return n, err
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
