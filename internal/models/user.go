// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfileImageURL is assigned to users who have not uploaded an avatar.
const DefaultProfileImageURL = "/profile.webp"

// User represents a registered author in the Bloggy application.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Username        string `gorm:"unique;not null" json:"username"`
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Bio             string `json:"bio"`
	ProfileImageURL string `gorm:"default:'/profile.webp'" json:"profile_image_url"`
	IsVerified      bool   `gorm:"default:false" json:"is_verified"`
	IsAdmin         bool   `gorm:"default:false" json:"is_admin"`

	// Single active email token per purpose. Issuing a new token of the same
	// purpose overwrites the previous one; consumption clears it.
	VerifyToken               string     `gorm:"index" json:"-"`
	VerifyTokenExpiry         *time.Time `json:"-"`
	ForgotPasswordToken       string     `gorm:"index" json:"-"`
	ForgotPasswordTokenExpiry *time.Time `json:"-"`
	HashedEmail               string     `json:"-"`

	// FollowersCount and FollowingCount are not persisted; computed at query time.
	FollowersCount int `gorm:"->" json:"followers_count"`
	FollowingCount int `gorm:"->" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Blogs     []Blog         `gorm:"foreignKey:UserID" json:"blogs,omitempty"`
}

// UserSummary is the trimmed representation used in follower/following lists.
type UserSummary struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
	Bio             string `json:"bio"`
}

// Summary converts a full user record into its list representation.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Username:        u.Username,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
	}
}
