package models

import (
	"time"

	"gorm.io/gorm"
)

// Media kinds accepted on posts.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post is a piece of creator content. Likes is a denormalized counter kept
// equal to the number of Like rows for the post; both are mutated inside the
// same transaction on every toggle.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	Text      string `gorm:"not null" json:"text"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	IsPublic  bool   `gorm:"not null;default:false" json:"is_public"`
	Likes     int    `gorm:"not null;default:0" json:"likes"`

	// MediaLocked is set on read paths when the viewer may not see the media;
	// MediaURL is blanked at the same time.
	MediaLocked bool `gorm:"-" json:"media_locked"`
	// Liked indicates whether the requesting viewer currently likes this post.
	// Scanned from a subquery alias, never stored.
	Liked bool `gorm:"->;-:migration" json:"liked"`
	// CommentsCount is scanned from a subquery alias, never stored.
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
