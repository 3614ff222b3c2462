package service

import (
	"context"
	"errors"

	"bloggy/internal/imagehost"
	"bloggy/internal/middleware"
	"bloggy/internal/models"
	"bloggy/internal/repository"
	"bloggy/internal/validation"
)

// UserService manages user profiles.
type UserService struct {
	userRepo repository.UserRepository
	images   imagehost.Host
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, images imagehost.Host) *UserService {
	return &UserService{
		userRepo: userRepo,
		images:   images,
	}
}

// GetProfile returns a user with computed follower/following counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithCounts(ctx, userID)
}

// UpdateBio replaces the user's bio.
func (s *UserService) UpdateBio(ctx context.Context, userID uint, bio string) (*models.User, error) {
	if err := validation.ValidateBio(bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Bio = bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileImage decodes the client's base64 data URL, pushes it to the
// image host and stores the returned durable URL on the profile.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID uint, dataURL string) (*models.User, error) {
	img, err := imagehost.ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, img)
	if err != nil {
		middleware.ImageUploads.WithLabelValues("failure").Inc()
		return nil, uploadError(err)
	}
	middleware.ImageUploads.WithLabelValues("success").Inc()

	user.ProfileImageURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadImage pushes a standalone image (e.g. a blog cover) to the image host
// and returns its durable URL without touching any profile.
func (s *UserService) UploadImage(ctx context.Context, dataURL string) (string, error) {
	img, err := imagehost.ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	url, err := s.images.Upload(ctx, img)
	if err != nil {
		middleware.ImageUploads.WithLabelValues("failure").Inc()
		return "", uploadError(err)
	}
	middleware.ImageUploads.WithLabelValues("success").Inc()
	return url, nil
}

// uploadError keeps host-produced application errors intact (e.g. uploads
// disabled) and wraps everything else as internal.
func uploadError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
