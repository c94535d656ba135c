package ports

import (
	"context"

	"github.com/pressmark/cms-api/internal/core/domain"
)

// CreateArticleInput carries all data needed to create a new article.
// Tags is the raw comma-separated form value; the service parses it.
type CreateArticleInput struct {
	Title    string
	Content  string
	Tags     string
	Status   string
	Image    *Upload
	AuthorID string
	Role     string
}

// UpdateArticleInput is a partial edit: nil fields are left untouched.
// A provided Title re-derives the slug; a provided Image replaces the stored
// image reference. Status is only honoured for admin callers.
type UpdateArticleInput struct {
	ID      string
	Role    string
	Title   *string
	Content *string
	Tags    *string
	Status  *string
	Image   *Upload
}

// ArticleService defines the use-case operations over articles.
type ArticleService interface {
	Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, input UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, error)
	// SetStatus is the dedicated publish/unpublish action: admin only, and the
	// status value must be a member of the enum.
	SetStatus(ctx context.Context, id, status, role string) (*domain.Article, error)
}
