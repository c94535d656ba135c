package domain

import (
	"errors"
	"time"
)

// ArticleStatus represents the visibility state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// Valid reports whether the status is a member of the known enum.
func (s ArticleStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

var ErrArticleNotFound = errors.New("article not found")
var ErrMissingFields = errors.New("title and content are required")
var ErrInvalidStatus = errors.New("invalid status value")
var ErrSlugConflict = errors.New("slug already in use")
var ErrForbidden = errors.New("access forbidden")

// Article is the core aggregate. Slug is unique across the store; the write
// path probes for conflicts and a unique index backs it up.
type Article struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Slug      string        `json:"slug"`
	ImageURL  string        `json:"image_url,omitempty"`
	Status    ArticleStatus `json:"status"`
	Tags      []string      `json:"tags"`
	AuthorID  string        `json:"-"`
	Author    *AuthorRef    `json:"author,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
