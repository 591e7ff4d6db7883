package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, user_id, user_name, user_image, cat_id, cat_name, title, summary, content, view_count, created_at`

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (id, user_id, user_name, user_image, cat_id, cat_name, title, summary, content)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING created_at
	`, b.ID, b.UserID, b.UserName, b.UserImage, b.CatID, b.CatName, b.Title, b.Summary, b.Content)
	return row.Scan(&b.CreatedAt)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blogs WHERE id = $1
	`, id))
}

func (r *BlogRepository) GetByTitle(ctx context.Context, title string) (*entity.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blogs WHERE title = $1 ORDER BY created_at DESC LIMIT 1
	`, title))
}

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{}
	var catID *string
	if err := row.Scan(&b.ID, &b.UserID, &b.UserName, &b.UserImage, &catID, &b.CatName,
		&b.Title, &b.Summary, &b.Content, &b.ViewCount, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if catID != nil {
		b.CatID = *catID
	}
	return b, nil
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE blogs
		SET title = $1, summary = $2, content = $3, cat_id = NULLIF($4, ''), cat_name = $5, view_count = $6
		WHERE id = $7
	`, b.Title, b.Summary, b.Content, b.CatID, b.CatName, b.ViewCount, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// filterClause builds the WHERE clause for a listing. Args start at $1.
func filterClause(f repository.BlogFilter) (string, []any) {
	var conds []string
	var args []any
	if !f.IncludeAbout {
		args = append(args, entity.AboutTitle)
		conds = append(conds, fmt.Sprintf("title <> $%d", len(args)))
	}
	if f.CatID != "" {
		args = append(args, f.CatID)
		conds = append(conds, fmt.Sprintf("cat_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func (r *BlogRepository) List(ctx context.Context, f repository.BlogFilter, limit, offset int) ([]*entity.Blog, error) {
	where, args := filterClause(f)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`
		SELECT `+blogColumns+` FROM blogs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*entity.Blog
	for rows.Next() {
		b := &entity.Blog{}
		var catID *string
		if err := rows.Scan(&b.ID, &b.UserID, &b.UserName, &b.UserImage, &catID, &b.CatName,
			&b.Title, &b.Summary, &b.Content, &b.ViewCount, &b.CreatedAt); err != nil {
			return nil, err
		}
		if catID != nil {
			b.CatID = *catID
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Count(ctx context.Context, f repository.BlogFilter) (int, error) {
	where, args := filterClause(f)
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM blogs`+where, args...).Scan(&n)
	return n, err
}

func (r *BlogRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE blogs SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
