package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pressmark/cms-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// ArticleCache is a slug-keyed read cache for resolved articles.
// Key format: article:slug:<slug>
type ArticleCache struct {
	client *redis.Client
}

// NewArticleCache creates an ArticleCache wrapping the given Redis client.
func NewArticleCache(client *redis.Client) *ArticleCache {
	return &ArticleCache{client: client}
}

// GetBySlug returns the cached article, or (nil, nil) on a miss.
func (c *ArticleCache) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	raw, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var article domain.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &article, nil
}

// SetBySlug stores the article under its slug for cacheTTL.
func (c *ArticleCache) SetBySlug(ctx context.Context, article *domain.Article) error {
	raw, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(article.Slug), raw, cacheTTL).Err()
}

// Invalidate drops the cached entry for a slug.
func (c *ArticleCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, c.key(slug)).Err()
}

func (c *ArticleCache) key(slug string) string {
	return "article:slug:" + slug
}
