package model

import (
	"time"

	"gorm.io/gorm"
)

// PostCategory is the category a post is filed under
type PostCategory string

const (
	PostCategoryJobs     PostCategory = "jobs"
	PostCategoryAdvice   PostCategory = "advice"
	PostCategoryMemories PostCategory = "memories"
	PostCategoryEvents   PostCategory = "events"
	PostCategoryGeneral  PostCategory = "general"
)

// IsValidPostCategory reports whether the given category is one of the known values
func IsValidPostCategory(category string) bool {
	switch PostCategory(category) {
	case PostCategoryJobs, PostCategoryAdvice, PostCategoryMemories, PostCategoryEvents, PostCategoryGeneral:
		return true
	}
	return false
}

// Post represents a short message shared with a college community
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	AuthorID  uint           `gorm:"index;not null" json:"author_id"`
	CollegeID uint           `gorm:"index;not null" json:"college_id"`
	Title     string         `gorm:"type:varchar(255)" json:"title,omitempty"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Category  PostCategory   `gorm:"type:varchar(20);default:'general';index" json:"category"`
	ImageURL  string         `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	Location  string         `gorm:"type:varchar(255)" json:"location,omitempty"`

	// Relationships
	Author   User          `gorm:"foreignKey:AuthorID" json:"-"`
	College  College       `gorm:"foreignKey:CollegeID" json:"-"`
	Likes    []PostLike    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []PostComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostLike marks that a user has liked a post. Existence is the state:
// one row per (post, user), toggled on and off rather than counted up.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_post_user" json:"user_id"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostComment is an append-only comment on a post
type PostComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`

	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// FeedPost is a post annotated for the feed: author profile, aggregate
// counters, and (when a viewer is known) whether that viewer liked it.
type FeedPost struct {
	Post
	Author        PublicProfile `json:"author"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	IsLikedByUser *bool         `json:"is_liked_by_user,omitempty"`
}

// CommentWithAuthor is a comment annotated with its author profile
type CommentWithAuthor struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Author    PublicProfile `json:"author"`
}
