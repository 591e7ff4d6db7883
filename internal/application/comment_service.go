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

// CommentService covers reader comments. Creating requires a logged-in
// user; deletion is admin-only (both enforced by middleware).
type CommentService struct {
	Comments repository.CommentRepository
	Blogs    repository.BlogRepository
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewCommentService(comments repository.CommentRepository, blogs repository.BlogRepository, logger *logrus.Logger, cfg *config.Config) *CommentService {
	return &CommentService{Comments: comments, Blogs: blogs, Logger: logger, Cfg: cfg}
}

// CreateComment attaches a comment to a blog.
func (s *CommentService) CreateComment(ctx context.Context, author *entity.User, blogID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("comment", "Comment can not be empty.")
	}
	if _, err := s.Blogs.GetByID(ctx, blogID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, err
	}
	c := &entity.Comment{
		ID:        helpers.NextID(),
		BlogID:    blogID,
		UserID:    author.ID,
		UserName:  author.Name,
		UserImage: author.Image,
		Content:   content,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	if err := s.Comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("comment")
		}
		return err
	}
	return nil
}

// ListBlogComments returns all comments on a blog, newest first.
func (s *CommentService) ListBlogComments(ctx context.Context, blogID string) ([]*entity.Comment, error) {
	return s.Comments.ListByBlog(ctx, blogID)
}

// ListComments returns one management page of comments.
func (s *CommentService) ListComments(ctx context.Context, pageIndex int) ([]*entity.Comment, *helpers.Page, error) {
	total, err := s.Comments.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := helpers.NewPage(total, pageIndex, s.Cfg.ManagePageSize, s.Cfg.PageShow)
	if total == 0 {
		return []*entity.Comment{}, p, nil
	}
	comments, err := s.Comments.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, nil, err
	}
	return comments, p, nil
}
