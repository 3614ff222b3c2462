// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a published blog post with a cover image.
type Blog struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	Body          string `gorm:"type:text;not null" json:"body"`
	CoverImageURL string `gorm:"not null" json:"cover_image_url"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time from the likes table,
	// so the count always equals the number of likers and cannot drift negative.
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this blog (computed).
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
