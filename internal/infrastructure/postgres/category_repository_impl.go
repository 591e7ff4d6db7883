package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`, c.ID, c.Name)
	if err := row.Scan(&c.CreatedAt); err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM categories WHERE id = $1
	`, id))
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM categories WHERE name = $1
	`, name))
}

func (r *CategoryRepository) scanOne(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.pool.Exec(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM categories ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *CategoryRepository) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM categories
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var cats []*entity.Category
	for rows.Next() {
		c := &entity.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&n)
	return n, err
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
