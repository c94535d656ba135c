package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pressmark/cms-api/internal/core/domain"
	"github.com/pressmark/cms-api/internal/core/ports"
)

type stubArticleService struct {
	createFn    func(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error)
	updateFn    func(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error)
	deleteFn    func(ctx context.Context, id string) error
	getFn       func(ctx context.Context, id string) (*domain.Article, error)
	getSlugFn   func(ctx context.Context, slug string) (*domain.Article, error)
	listFn      func(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error)
	setStatusFn func(ctx context.Context, id, status, role string) (*domain.Article, error)
}

func (s *stubArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, in)
}

func (s *stubArticleService) Update(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error) {
	return s.updateFn(ctx, in)
}

func (s *stubArticleService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.getFn(ctx, id)
}

func (s *stubArticleService) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return s.getSlugFn(ctx, slug)
}

func (s *stubArticleService) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error) {
	return s.listFn(ctx, filter)
}

func (s *stubArticleService) SetStatus(ctx context.Context, id, status, role string) (*domain.Article, error) {
	return s.setStatusFn(ctx, id, status, role)
}

// multipartBody builds a multipart form with the given text fields and an
// optional image part.
func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.Copy(part, strings.NewReader("fake-image-bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestArticleHandler_Create_Success(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		createFn: func(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
			if in.Title != "My Post" || in.Content != "body" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.AuthorID != "u1" || in.Role != domain.RoleEditor {
				t.Fatalf("claims not forwarded: %+v", in)
			}
			if in.Image == nil || in.Image.Filename != "cover.png" {
				t.Fatalf("image not forwarded: %+v", in.Image)
			}
			return &domain.Article{
				ID: "a1", Title: in.Title, Content: in.Content,
				Slug: "my-post", Status: domain.StatusDraft, Tags: []string{"go"},
			}, nil
		},
	}
	h := NewArticleHandler(stub)

	body, contentType := multipartBody(t, map[string]string{
		"title": "My Post", "content": "body", "tags": "go",
	}, "cover.png")
	req := httptest.NewRequest(http.MethodPost, "/articles", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleEditor)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	article, ok := resp["article"].(map[string]any)
	if !ok {
		t.Fatalf("expected article in response: %v", resp)
	}
	if article["slug"] != "my-post" {
		t.Fatalf("unexpected slug: %v", article["slug"])
	}
}

func TestArticleHandler_Create_NoClaims(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		createFn: func(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewArticleHandler(stub)

	body, contentType := multipartBody(t, map[string]string{"title": "x", "content": "y"}, "")
	req := httptest.NewRequest(http.MethodPost, "/articles", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestArticleHandler_Update_OnlyProvidedFields(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		updateFn: func(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error) {
			if in.ID != "a1" {
				t.Fatalf("unexpected id: %s", in.ID)
			}
			if in.Title != nil || in.Tags != nil || in.Status != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			if in.Content == nil || *in.Content != "new body" {
				t.Fatalf("content not forwarded: %+v", in.Content)
			}
			return &domain.Article{ID: "a1", Title: "Old", Content: *in.Content, Slug: "old", Status: domain.StatusDraft}, nil
		},
	}
	h := NewArticleHandler(stub)

	body, contentType := multipartBody(t, map[string]string{"content": "new body"}, "")
	req := httptest.NewRequest(http.MethodPut, "/articles/a1", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleEditor)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestArticleHandler_Update_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		updateFn: func(ctx context.Context, in ports.UpdateArticleInput) (*domain.Article, error) {
			return nil, domain.ErrArticleNotFound
		},
	}
	h := NewArticleHandler(stub)

	body, contentType := multipartBody(t, map[string]string{"content": "x"}, "")
	req := httptest.NewRequest(http.MethodPut, "/articles/missing", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleEditor)

	if err := h.Update(c); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound to propagate, got %v", err)
	}
}

func TestArticleHandler_Delete_Success(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "a1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/articles/a1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleEditor)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestArticleHandler_List_ForwardsStatusFilter(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		listFn: func(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error) {
			if filter.Status != "published" {
				t.Fatalf("filter not forwarded: %+v", filter)
			}
			return []*domain.Article{
				{ID: "a1", Title: "One", Slug: "one", Status: domain.StatusPublished},
			}, nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/articles?status=published", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["articles"]) != 1 {
		t.Fatalf("expected 1 article, got %v", resp)
	}
}

func TestArticleHandler_GetBySlug(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		getSlugFn: func(ctx context.Context, slug string) (*domain.Article, error) {
			if slug != "my-post" {
				t.Fatalf("unexpected slug: %s", slug)
			}
			return &domain.Article{ID: "a1", Title: "My Post", Slug: slug, Status: domain.StatusPublished}, nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/articles/slug/my-post", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("my-post")

	if err := h.GetBySlug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestArticleHandler_Publish_Success(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		setStatusFn: func(ctx context.Context, id, status, role string) (*domain.Article, error) {
			if id != "a1" || status != "published" || role != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %s %s", id, status, role)
			}
			return &domain.Article{ID: id, Title: "T", Slug: "t", Status: domain.StatusPublished}, nil
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/articles/a1/publish", strings.NewReader(`{"status":"published"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleAdmin)

	if err := h.Publish(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(resp["message"].(string), "published") {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestArticleHandler_Publish_InvalidStatus(t *testing.T) {
	e := echo.New()
	stub := &stubArticleService{
		setStatusFn: func(ctx context.Context, id, status, role string) (*domain.Article, error) {
			return nil, domain.ErrInvalidStatus
		},
	}
	h := NewArticleHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/articles/a1/publish", strings.NewReader(`{"status":"archived"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleAdmin)

	if err := h.Publish(c); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus to propagate, got %v", err)
	}
}
