// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a blog post. Comments are created once and
// never edited or removed.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Blog      Blog      `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
