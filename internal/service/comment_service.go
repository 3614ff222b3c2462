package service

import (
	"context"
	"strings"

	"bloggy/internal/models"
	"bloggy/internal/repository"
)

// CommentService manages blog comments. Comments are append-only; there is
// no edit or delete.
type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
	}
}

// Create adds a comment to the blog.
func (s *CommentService) Create(ctx context.Context, blogID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > 2000 {
		return nil, models.NewValidationError("Comment must be at most 2000 characters")
	}

	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Blog", blogID)
	}

	comment := &models.Comment{
		Content: content,
		BlogID:  blogID,
		UserID:  userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForBlog returns the blog's comments with their authors, newest first.
func (s *CommentService) ListForBlog(ctx context.Context, blogID uint, limit, offset int) ([]models.Comment, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Blog", blogID)
	}
	return s.commentRepo.GetByBlogID(ctx, blogID, limit, offset)
}
