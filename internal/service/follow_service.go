// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"bloggy/internal/models"
	"bloggy/internal/repository"
)

// FollowService manages the directed follow graph between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge follower -> target. The insert is a single
// conditional statement, so two racing follow calls cannot produce a
// duplicate edge; the loser sees a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	created, err := s.followRepo.Create(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !created {
		return models.NewConflictError("Already following this user")
	}
	return nil
}

// Unfollow removes the edge follower -> target.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot unfollow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	removed, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewConflictError("Not following this user")
	}
	return nil
}

// ListFollowers returns summaries of everyone following the user.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(users), nil
}

// ListFollowing returns summaries of everyone the user follows.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(users), nil
}

// IsFollowing reports whether follower currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, targetID)
}

// FollowCounts returns the user's follower and following counts.
func (s *FollowService) FollowCounts(ctx context.Context, userID uint) (followers, following int64, err error) {
	return s.followRepo.Counts(ctx, userID)
}

func summarize(users []models.User) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries
}
