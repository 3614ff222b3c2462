package service

import (
	"context"
	"strings"

	"bloggy/internal/cache"
	"bloggy/internal/models"
	"bloggy/internal/repository"
)

// BlogService manages blog posts.
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

// NewBlogService returns a new BlogService.
func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		userRepo: userRepo,
	}
}

// Create publishes a new blog post. Title, body and cover image are all
// required.
func (s *BlogService) Create(ctx context.Context, userID uint, title, body, coverImageURL string) (*models.Blog, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > 200 {
		return nil, models.NewValidationError("Title must be at most 200 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if strings.TrimSpace(coverImageURL) == "" {
		return nil, models.NewValidationError("Cover image is required")
	}

	blog := &models.Blog{
		Title:         title,
		Body:          body,
		CoverImageURL: coverImageURL,
		UserID:        userID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID, userID)
}

// Get returns a single blog with its author. currentUserID of zero means an
// anonymous reader; a real id additionally resolves the liked flag.
func (s *BlogService) Get(ctx context.Context, blogID, currentUserID uint) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, blogID, currentUserID)
}

// defaultHomeLimit is the page size the cached anonymous home feed is keyed to.
const defaultHomeLimit = 20

// ListHome returns the newest blogs across all authors. The first anonymous
// default-size page is served cache-aside; personalized pages carry the
// reader's liked flag and go straight to the database.
func (s *BlogService) ListHome(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	if currentUserID == 0 && offset == 0 && limit == defaultHomeLimit {
		var blogs []*models.Blog
		err := cache.Aside(ctx, cache.BlogListKey, &blogs, cache.BlogListTTL, func() error {
			var fetchErr error
			blogs, fetchErr = s.blogRepo.List(ctx, limit, offset, currentUserID)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return blogs, nil
	}
	return s.blogRepo.List(ctx, limit, offset, currentUserID)
}

// ListByUser returns a single author's blogs, newest first.
func (s *BlogService) ListByUser(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByUserID(ctx, authorID, limit, offset, currentUserID)
}
