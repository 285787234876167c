package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// BlogPost is a blog article with denormalized view, like and comment
// counters.
type BlogPost struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Slug         string    `json:"slug" db:"slug"`
	Content      string    `json:"content" db:"content"`
	AuthorID     uuid.UUID `json:"-" db:"author_id"`
	Category     string    `json:"category" db:"category"`
	Tags         string    `json:"tags" db:"tags"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	ViewCount    int       `json:"number_of_views" db:"view_count"`
	LikeCount    int       `json:"number_of_likes" db:"like_count"`
	CommentCount int       `json:"number_of_comments" db:"comment_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// BlogComment is a user comment on a blog post.
type BlogComment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Slugify lowercases a title and replaces runs of non-alphanumeric
// characters with single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
