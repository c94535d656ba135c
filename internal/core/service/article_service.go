package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressmark/cms-api/internal/api/metrics"
	"github.com/pressmark/cms-api/internal/core/domain"
	"github.com/pressmark/cms-api/internal/core/ports"
)

// ArticleCache abstracts the slug-keyed read cache (Redis). A miss is
// (nil, nil); cache failures are soft and never fail the request.
type ArticleCache interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	SetBySlug(ctx context.Context, article *domain.Article) error
	Invalidate(ctx context.Context, slug string) error
}

// ArticleService sequences slug derivation, status gating, image storage, and
// persistence for the article write path.
type ArticleService struct {
	repo  ports.ArticleRepository
	users ports.UserRepository
	files ports.FileStore
	cache ArticleCache
	log   zerolog.Logger
}

func NewArticleService(
	repo ports.ArticleRepository,
	users ports.UserRepository,
	files ports.FileStore,
	cache ArticleCache,
	log zerolog.Logger,
) *ArticleService {
	return &ArticleService{repo: repo, users: users, files: files, cache: cache, log: log}
}

// Create persists a new article. Title and content are mandatory; everything
// else is optional. Only an admin can create directly in published state.
func (s *ArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrMissingFields
	}

	slug, err := s.deriveSlug(ctx, in.Title, "")
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if in.Image != nil {
		imageURL, err = s.storeImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:     in.Title,
		Content:   in.Content,
		Slug:      slug,
		ImageURL:  imageURL,
		Status:    gateCreateStatus(in.Status, in.Role),
		Tags:      parseTags(in.Tags),
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("failed to create article")
		return nil, err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.log.Info().Str("article_id", created.ID).Str("slug", created.Slug).Str("status", string(created.Status)).Msg("article created")

	return s.resolveAuthor(ctx, created), nil
}

// Update applies a partial edit. A new title re-derives the slug, excluding
// the article itself from the conflict probe. A non-admin caller's status
// value is dropped; an admin's is persisted as supplied, since the enum is
// only enforced on the dedicated publish action.
func (s *ArticleService) Update(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error) {
	var upd ports.ArticleUpdate

	if in.Title != nil {
		slug, err := s.deriveSlug(ctx, *in.Title, in.ID)
		if err != nil {
			return nil, err
		}
		upd.Title = in.Title
		upd.Slug = &slug
	}
	if in.Content != nil {
		upd.Content = in.Content
	}
	if in.Image != nil {
		url, err := s.storeImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}
	if in.Tags != nil {
		tags := parseTags(*in.Tags)
		upd.Tags = &tags
	}
	if in.Status != nil && in.Role == domain.RoleAdmin {
		upd.Status = in.Status
	}

	// The slug is the cache key, so a rename must drop the old entry too.
	if upd.Slug != nil {
		if prior, err := s.repo.FindByID(ctx, in.ID); err == nil {
			s.invalidate(ctx, prior.Slug)
		}
	}

	updated, err := s.repo.Update(ctx, in.ID, upd)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, updated.Slug)
	s.log.Info().Str("article_id", updated.ID).Str("slug", updated.Slug).Msg("article updated")

	return s.resolveAuthor(ctx, updated), nil
}

// Delete removes an article and, best effort, its uploaded image file.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if deleted.ImageURL != "" {
		if err := s.files.Remove(ctx, deleted.ImageURL); err != nil {
			s.log.Warn().Err(err).Str("image_url", deleted.ImageURL).Msg("failed to remove upload file")
		}
	}

	s.invalidate(ctx, deleted.Slug)
	s.log.Info().Str("article_id", id).Msg("article deleted")
	return nil
}

// Get retrieves an article by id with its author resolved.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveAuthor(ctx, article), nil
}

// GetBySlug retrieves an article by slug, reading through the cache.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBySlug(ctx, slug)
		if err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("cache read failed")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	article = s.resolveAuthor(ctx, article)

	if s.cache != nil {
		if err := s.cache.SetBySlug(ctx, article); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("cache write failed")
		}
	}
	return article, nil
}

// List returns articles matching filter, newest first, authors resolved.
func (s *ArticleService) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error) {
	articles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]*domain.AuthorRef)
	for _, a := range articles {
		if a.AuthorID == "" {
			continue
		}
		ref, seen := refs[a.AuthorID]
		if !seen {
			if u, err := s.users.FindByID(ctx, a.AuthorID); err == nil {
				ref = &domain.AuthorRef{Username: u.Username, Role: u.Role}
			}
			refs[a.AuthorID] = ref
		}
		a.Author = ref
	}
	return articles, nil
}

// SetStatus is the dedicated publish/unpublish action. Unlike the general
// update path it validates the enum, and it is admin-only.
func (s *ArticleService) SetStatus(ctx context.Context, id, status, role string) (*domain.Article, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !domain.ArticleStatus(status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.repo.Update(ctx, id, ports.ArticleUpdate{Status: &status})
	if err != nil {
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues(status).Inc()
	s.invalidate(ctx, updated.Slug)
	s.log.Info().Str("article_id", id).Str("status", status).Msg("article status changed")

	return s.resolveAuthor(ctx, updated), nil
}

// deriveSlug normalizes title and probes for conflicts, suffixing a millisecond
// timestamp when the candidate is taken. The probe is check-then-act; the
// unique index on slug is the authoritative backstop for concurrent creates.
func (s *ArticleService) deriveSlug(ctx context.Context, title, excludeID string) (string, error) {
	candidate := Slugify(title)
	exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
	if err != nil {
		return "", fmt.Errorf("slug probe: %w", err)
	}
	if exists {
		candidate = fmt.Sprintf("%s-%d", candidate, time.Now().UnixMilli())
	}
	return candidate, nil
}

func (s *ArticleService) storeImage(ctx context.Context, up ports.Upload) (string, error) {
	url, err := s.files.Save(ctx, up)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	metrics.UploadsTotal.Inc()
	return url, nil
}

func (s *ArticleService) resolveAuthor(ctx context.Context, a *domain.Article) *domain.Article {
	if a.AuthorID == "" {
		return a
	}
	u, err := s.users.FindByID(ctx, a.AuthorID)
	if err != nil {
		// The author may have been removed; serve the article without it.
		return a
	}
	a.Author = &domain.AuthorRef{Username: u.Username, Role: u.Role}
	return a
}

func (s *ArticleService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("cache invalidation failed")
	}
}

// gateCreateStatus decides the persisted status on create: only an admin
// explicitly requesting "published" escapes the draft default.
func gateCreateStatus(requested, role string) domain.ArticleStatus {
	if role == domain.RoleAdmin && requested == string(domain.StatusPublished) {
		return domain.StatusPublished
	}
	return domain.StatusDraft
}

// parseTags splits a comma-separated form value into trimmed, ordered tags.
// An empty value yields an empty list.
func parseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}
