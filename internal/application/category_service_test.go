package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goblog/pkg/apperr"
)

func newTestCategoryService(cats *fakeCategoryRepo) *CategoryService {
	return NewCategoryService(cats, nil, testConfig())
}

func TestCreateCategory(t *testing.T) {
	svc := newTestCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "  go  ")
	require.NoError(t, err)
	assert.Equal(t, "go", c.Name)
	assert.NotEmpty(t, c.ID)

	var ve *apperr.ValidationError
	_, err = svc.CreateCategory(ctx, "   ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name can not be empty.", ve.Message)

	var ce *apperr.ConflictError
	_, err = svc.CreateCategory(ctx, "go")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Category already exists.", ce.Message)
}

func TestUpdateCategory(t *testing.T) {
	svc := newTestCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "go")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "rust")
	require.NoError(t, err)

	got, err := svc.UpdateCategory(ctx, c.ID, "golang")
	require.NoError(t, err)
	assert.Equal(t, "golang", got.Name)

	var ce *apperr.ConflictError
	_, err = svc.UpdateCategory(ctx, c.ID, "rust")
	require.ErrorAs(t, err, &ce)

	var nf *apperr.NotFoundError
	_, err = svc.UpdateCategory(ctx, "ghost", "new")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "category", nf.Resource)
}

func TestDeleteCategory(t *testing.T) {
	svc := newTestCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "go")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, c.ID))

	var nf *apperr.NotFoundError
	err = svc.DeleteCategory(ctx, c.ID)
	require.ErrorAs(t, err, &nf)
}

func TestListCategories(t *testing.T) {
	svc := newTestCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, name := range []string{"go", "rust", "zig"} {
		_, err := svc.CreateCategory(ctx, name)
		require.NoError(t, err)
	}

	all, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	svc.Cfg.ManagePageSize = 2
	page1, page, err := svc.ListCategoriesManage(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Equal(t, 3, page.ItemCount)
	assert.True(t, page.HasNext)
}
