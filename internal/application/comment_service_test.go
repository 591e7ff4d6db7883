package application

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
	"goblog/pkg/apperr"
)

type fakeCommentRepo struct {
	comments map[string]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entity.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByBlog(_ context.Context, blogID string) ([]*entity.Comment, error) {
	out := []*entity.Comment{}
	for _, c := range r.comments {
		if c.BlogID == blogID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) List(_ context.Context, limit, offset int) ([]*entity.Comment, error) {
	ids := make([]string, 0, len(r.comments))
	for id := range r.comments {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	out := []*entity.Comment{}
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		cp := *r.comments[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCommentRepo) Count(_ context.Context) (int, error) {
	return len(r.comments), nil
}

func newTestCommentService(comments *fakeCommentRepo, blogs *fakeBlogRepo) *CommentService {
	return NewCommentService(comments, blogs, nil, testConfig())
}

func TestCreateComment(t *testing.T) {
	blogs := newFakeBlogRepo()
	ctx := context.Background()
	require.NoError(t, blogs.Create(ctx, &entity.Blog{ID: "blog-1", Title: "Hello", Content: "body"}))
	svc := newTestCommentService(newFakeCommentRepo(), blogs)

	c, err := svc.CreateComment(ctx, testAuthor(), "blog-1", "  nice post  ")
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Content)
	assert.Equal(t, "blog-1", c.BlogID)
	assert.Equal(t, "author-1", c.UserID)
	assert.Equal(t, "Alice", c.UserName)

	var ve *apperr.ValidationError
	_, err = svc.CreateComment(ctx, testAuthor(), "blog-1", "   ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Comment can not be empty.", ve.Message)

	var nf *apperr.NotFoundError
	_, err = svc.CreateComment(ctx, testAuthor(), "ghost", "hello")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "blog", nf.Resource)
}

func TestDeleteComment(t *testing.T) {
	blogs := newFakeBlogRepo()
	comments := newFakeCommentRepo()
	ctx := context.Background()
	require.NoError(t, blogs.Create(ctx, &entity.Blog{ID: "blog-1", Title: "Hello", Content: "body"}))
	svc := newTestCommentService(comments, blogs)

	c, err := svc.CreateComment(ctx, testAuthor(), "blog-1", "hi")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, c.ID))

	var nf *apperr.NotFoundError
	err = svc.DeleteComment(ctx, c.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "comment", nf.Resource)
}

func TestListCommentsPagination(t *testing.T) {
	blogs := newFakeBlogRepo()
	comments := newFakeCommentRepo()
	ctx := context.Background()
	require.NoError(t, blogs.Create(ctx, &entity.Blog{ID: "blog-1", Title: "Hello", Content: "body"}))
	svc := newTestCommentService(comments, blogs)
	svc.Cfg.ManagePageSize = 2

	for i := 0; i < 3; i++ {
		_, err := svc.CreateComment(ctx, testAuthor(), "blog-1", "comment")
		require.NoError(t, err)
	}

	list, page, err := svc.ListComments(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 3, page.ItemCount)
	assert.Equal(t, 2, page.PageCount)

	byBlog, err := svc.ListBlogComments(ctx, "blog-1")
	require.NoError(t, err)
	assert.Len(t, byBlog, 3)
}
