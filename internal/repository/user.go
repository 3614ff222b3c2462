// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"bloggy/internal/cache"
	"bloggy/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithCounts(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByVerifyToken(ctx context.Context, token string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser round-trips a user row through Redis without losing the columns
// the API representation hides behind `json:"-"` (password hash, email
// tokens). Caching models.User directly would zero those fields on a cache
// hit, and the Save in Update would then persist the zeroed values.
type cachedUser struct {
	User                      models.User `json:"user"`
	Password                  string      `json:"password"`
	VerifyToken               string      `json:"verify_token"`
	VerifyTokenExpiry         *time.Time  `json:"verify_token_expiry"`
	ForgotPasswordToken       string      `json:"forgot_password_token"`
	ForgotPasswordTokenExpiry *time.Time  `json:"forgot_password_token_expiry"`
	HashedEmail               string      `json:"hashed_email"`
}

func newCachedUser(u *models.User) cachedUser {
	return cachedUser{
		User:                      *u,
		Password:                  u.Password,
		VerifyToken:               u.VerifyToken,
		VerifyTokenExpiry:         u.VerifyTokenExpiry,
		ForgotPasswordToken:       u.ForgotPasswordToken,
		ForgotPasswordTokenExpiry: u.ForgotPasswordTokenExpiry,
		HashedEmail:               u.HashedEmail,
	}
}

func (c *cachedUser) user() *models.User {
	u := c.User
	u.Password = c.Password
	u.VerifyToken = c.VerifyToken
	u.VerifyTokenExpiry = c.VerifyTokenExpiry
	u.ForgotPasswordToken = c.ForgotPasswordToken
	u.ForgotPasswordTokenExpiry = c.ForgotPasswordTokenExpiry
	u.HashedEmail = c.HashedEmail
	return &u
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry cachedUser
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &entry, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry = newCachedUser(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry.user(), nil
}

// GetByIDWithCounts loads a user together with computed follower and
// following counts for profile pages. Not cached: counts change on every
// follow and a stale profile count is more visible than a stale bio.
func (r *userRepository) GetByIDWithCounts(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("users.*, " +
			"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) as followers_count, " +
			"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("verify_token = ? AND verify_token <> ''", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("forgot_password_token = ? AND forgot_password_token <> ''", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}
