// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"bloggy/internal/cache"
	"bloggy/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeState is the hydration payload for a blog's like widget.
type LikeState struct {
	Likes       int64 `json:"likes"`
	LikedByUser bool  `json:"liked_by_user"`
}

// BlogRepository defines persistence operations for blogs and their likes.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	Exists(ctx context.Context, id uint) (bool, error)

	// Like inserts the like edge. Returns (false, nil) when the user had
	// already liked the blog and nothing was written.
	Like(ctx context.Context, userID, blogID uint) (bool, error)
	// Unlike removes the like edge. Returns (false, nil) when there was no
	// like to remove.
	Unlike(ctx context.Context, userID, blogID uint) (bool, error)
	IsLiked(ctx context.Context, userID, blogID uint) (bool, error)
	CountLikes(ctx context.Context, blogID uint) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogList(ctx)
	return nil
}

// applyBlogDetails adds subqueries to fetch counts and liked status in a single query.
func (r *blogRepository) applyBlogDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "blogs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.blog_id = blogs.id) as likes_count"
	if currentUserID > 0 {
		selectQuery += ", EXISTS(SELECT 1 FROM likes WHERE likes.blog_id = blogs.id AND likes.user_id = ?) as liked"
		return db.Select(selectQuery, currentUserID)
	}
	return db.Select(selectQuery)
}

func (r *blogRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error) {
	var blog models.Blog

	load := func() error {
		err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&blog, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only anonymous reads hit the cache; personalized rows carry the
	// requesting user's liked flag and must not be shared.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.BlogKey(id), &blog, cache.BlogTTL, load); err != nil {
			return nil, err
		}
		return &blog, nil
	}

	if err := load(); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *blogRepository) Like(ctx context.Context, userID, blogID uint) (bool, error) {
	like := models.Like{UserID: userID, BlogID: blogID}
	// INSERT ... ON CONFLICT DO NOTHING on the unique (user, blog) index;
	// zero rows affected means the like already exists. This is the atomic
	// membership-check-and-append in a single statement.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateBlog(ctx, blogID)
	}
	return result.RowsAffected > 0, nil
}

func (r *blogRepository) Unlike(ctx context.Context, userID, blogID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateBlog(ctx, blogID)
	}
	return result.RowsAffected > 0, nil
}

func (r *blogRepository) IsLiked(ctx context.Context, userID, blogID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *blogRepository) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
