package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"goblog/config"
	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
	"goblog/pkg/apperr"
	"goblog/pkg/helpers"
)

const maxSummaryLen = 200

// BlogService covers post listing, reading, and the admin CRUD. Admin
// authorization is enforced by middleware before these methods run.
type BlogService struct {
	Blogs   repository.BlogRepository
	Cats    repository.CategoryRepository
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
	Cfg     *config.Config
}

func NewBlogService(blogs repository.BlogRepository, cats repository.CategoryRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger, cfg *config.Config) *BlogService {
	return &BlogService{Blogs: blogs, Cats: cats, ES: es, ESIndex: esIndex, Logger: logger, Cfg: cfg}
}

// ListBlogs returns one index page of posts, newest first, excluding the
// about page.
func (s *BlogService) ListBlogs(ctx context.Context, pageIndex int) ([]*entity.Blog, *helpers.Page, error) {
	return s.list(ctx, repository.BlogFilter{}, pageIndex, s.Cfg.BlogPageSize)
}

// ListBlogsByCategory returns one page of posts in the given category.
func (s *BlogService) ListBlogsByCategory(ctx context.Context, catID string, pageIndex int) (*entity.Category, []*entity.Blog, *helpers.Page, error) {
	cat, err := s.Cats.GetByID(ctx, catID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, apperr.NotFound("category")
		}
		return nil, nil, nil, err
	}
	blogs, p, err := s.list(ctx, repository.BlogFilter{CatID: catID}, pageIndex, s.Cfg.BlogPageSize)
	if err != nil {
		return nil, nil, nil, err
	}
	return cat, blogs, p, nil
}

// ListBlogsManage returns one management page of posts, including the
// about entry.
func (s *BlogService) ListBlogsManage(ctx context.Context, pageIndex int) ([]*entity.Blog, *helpers.Page, error) {
	return s.list(ctx, repository.BlogFilter{IncludeAbout: true}, pageIndex, s.Cfg.ManagePageSize)
}

func (s *BlogService) list(ctx context.Context, f repository.BlogFilter, pageIndex, perPage int) ([]*entity.Blog, *helpers.Page, error) {
	total, err := s.Blogs.Count(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	p := helpers.NewPage(total, pageIndex, perPage, s.Cfg.PageShow)
	if total == 0 {
		return []*entity.Blog{}, p, nil
	}
	blogs, err := s.Blogs.List(ctx, f, p.Limit, p.Offset)
	if err != nil {
		return nil, nil, err
	}
	return blogs, p, nil
}

// GetBlog fetches a post and bumps its view counter.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, err
	}
	if err := s.Blogs.IncrementViewCount(ctx, id); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", id).Warn("view count increment failed")
		}
	} else {
		b.ViewCount++
	}
	return b, nil
}

// GetAbout fetches the special about-page entry.
func (s *BlogService) GetAbout(ctx context.Context) (*entity.Blog, error) {
	b, err := s.Blogs.GetByTitle(ctx, entity.AboutTitle)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, err
	}
	return b, nil
}

// BlogInput is the create/update payload for a post.
type BlogInput struct {
	Title   string
	Summary string
	Content string
	CatName string
}

// normalize validates a BlogInput and resolves the category name. The
// summary defaults to the first 200 characters of the content.
func (s *BlogService) normalize(ctx context.Context, in *BlogInput) (catID string, err error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.Content = strings.TrimSpace(in.Content)
	in.CatName = strings.TrimSpace(in.CatName)

	if in.Title == "" {
		return "", apperr.Validation("title", "Title can not be empty.")
	}
	if in.Content == "" {
		return "", apperr.Validation("content", "Content can not be empty.")
	}
	if in.Summary == "" {
		r := []rune(in.Content)
		if len(r) > maxSummaryLen {
			r = r[:maxSummaryLen]
		}
		in.Summary = string(r)
	} else if len([]rune(in.Summary)) > maxSummaryLen {
		return "", apperr.Validation("summary", "Length of summary can not be larger than 200.")
	}
	if in.CatName == "" {
		return "", nil
	}
	cat, err := s.Cats.GetByName(ctx, in.CatName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.Validation("cat_name", "cat_name is not belong to Category.")
		}
		return "", err
	}
	return cat.ID, nil
}

// CreateBlog publishes a new post authored by the given user.
func (s *BlogService) CreateBlog(ctx context.Context, author *entity.User, in BlogInput) (*entity.Blog, error) {
	catID, err := s.normalize(ctx, &in)
	if err != nil {
		return nil, err
	}
	b := &entity.Blog{
		ID:        helpers.NextID(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserImage: author.Image,
		CatID:     catID,
		CatName:   in.CatName,
		Title:     in.Title,
		Summary:   in.Summary,
		Content:   in.Content,
	}
	if err := s.Blogs.Create(ctx, b); err != nil {
		return nil, err
	}
	s.indexBlog(ctx, b)
	return b, nil
}

// UpdateBlog edits an existing post.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in BlogInput) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("blog")
		}
		return nil, err
	}
	catID, err := s.normalize(ctx, &in)
	if err != nil {
		return nil, err
	}
	b.Title = in.Title
	b.Summary = in.Summary
	b.Content = in.Content
	b.CatID = catID
	b.CatName = in.CatName
	if err := s.Blogs.Update(ctx, b); err != nil {
		return nil, err
	}
	s.indexBlog(ctx, b)
	return b, nil
}

// DeleteBlog removes a post and its search document.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if err := s.Blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("blog")
		}
		return err
	}
	if s.ES != nil && s.ESIndex != "" {
		req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if res, err := req.Do(c, s.ES); err == nil {
			_ = res.Body.Close()
		}
	}
	return nil
}

func (s *BlogService) indexBlog(ctx context.Context, b *entity.Blog) {
	if s.ES == nil || s.ESIndex == "" || b.Title == entity.AboutTitle {
		return
	}
	doc := map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"summary":    b.Summary,
		"content":    b.Content,
		"cat_name":   b.CatName,
		"user_name":  b.UserName,
		"created_at": b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("blog_id", b.ID).Warn("es index response error")
	}
}

// SearchBlogs performs a multi_match query over title, summary, and content.
func (s *BlogService) SearchBlogs(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "summary", "content"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
