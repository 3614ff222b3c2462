package service

import (
	"context"

	"bloggy/internal/cache"
	"bloggy/internal/models"
	"bloggy/internal/repository"
)

// EngagementService manages per-blog likes. The like count is derived from
// the likes table, so it always equals the number of likers and cannot go
// negative or drift under concurrent calls.
type EngagementService struct {
	blogRepo repository.BlogRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(blogRepo repository.BlogRepository) *EngagementService {
	return &EngagementService{blogRepo: blogRepo}
}

// Like records userID's like on the blog and returns the fresh count.
// Two racing likes cannot both succeed; the loser sees a conflict.
func (s *EngagementService) Like(ctx context.Context, blogID, userID uint) (int64, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NewNotFoundError("Blog", blogID)
	}

	created, err := s.blogRepo.Like(ctx, userID, blogID)
	if err != nil {
		return 0, err
	}
	if !created {
		return 0, models.NewConflictError("You have already liked this blog")
	}

	return s.blogRepo.CountLikes(ctx, blogID)
}

// Unlike removes userID's like from the blog and returns the fresh count.
func (s *EngagementService) Unlike(ctx context.Context, blogID, userID uint) (int64, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NewNotFoundError("Blog", blogID)
	}

	removed, err := s.blogRepo.Unlike(ctx, userID, blogID)
	if err != nil {
		return 0, err
	}
	if !removed {
		return 0, models.NewConflictError("You have not liked this blog")
	}

	return s.blogRepo.CountLikes(ctx, blogID)
}

// InitialLikeState returns the current like count and whether userID already
// liked the blog, used to hydrate client state on page load. userID of zero
// means an anonymous reader.
func (s *EngagementService) InitialLikeState(ctx context.Context, blogID, userID uint) (*repository.LikeState, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Blog", blogID)
	}

	var likes int64
	err = cache.Aside(ctx, cache.LikeStateKey(blogID), &likes, cache.LikeStateTTL, func() error {
		var countErr error
		likes, countErr = s.blogRepo.CountLikes(ctx, blogID)
		return countErr
	})
	if err != nil {
		return nil, err
	}

	state := &repository.LikeState{Likes: likes}
	if userID > 0 {
		liked, err := s.blogRepo.IsLiked(ctx, userID, blogID)
		if err != nil {
			return nil, err
		}
		state.LikedByUser = liked
	}
	return state, nil
}
