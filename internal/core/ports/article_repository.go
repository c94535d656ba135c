package ports

import (
	"context"

	"github.com/pressmark/cms-api/internal/core/domain"
)

// ListArticlesFilter carries the query parameters for listing articles.
type ListArticlesFilter struct {
	Status string // optional: exact match on article status
}

// ArticleUpdate is an explicit partial update: only non-nil fields are written.
type ArticleUpdate struct {
	Title    *string
	Content  *string
	Slug     *string
	Tags     *[]string
	ImageURL *string
	Status   *string
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	// Update applies the non-nil fields of upd and returns the resulting record.
	Update(ctx context.Context, id string, upd ArticleUpdate) (*domain.Article, error)
	// Delete removes the article and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// List returns articles matching filter, newest first by creation time.
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, error)
	// SlugExists reports whether slug is taken by an article other than excludeID.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}
