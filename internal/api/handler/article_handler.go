package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressmark/cms-api/internal/core/domain"
	"github.com/pressmark/cms-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations. Writes arrive
// as multipart forms so an image file can ride along with the text fields.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title    formData  string  true   "Article title"
// @Param        content  formData  string  true   "Article body"
// @Param        tags     formData  string  false  "Comma-separated tags"
// @Param        status   formData  string  false  "Requested status (admin only)"
// @Param        image    formData  file    false  "Cover image"
// @Success      201  {object}  articleEnvelope
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	in := ports.CreateArticleInput{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Tags:     c.FormValue("tags"),
		Status:   c.FormValue("status"),
		AuthorID: userID,
		Role:     role,
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()
	in.Image = image

	article, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, articleEnvelope{
		Message: "article created successfully",
		Article: toArticleResponse(article),
	})
}

// Update handles PUT /articles/:id. Fields are independent: only non-empty
// form values are applied, mirroring the partial-update contract.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  articleEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	in := ports.UpdateArticleInput{ID: c.Param("id"), Role: role}
	setIfPresent(c, "title", &in.Title)
	setIfPresent(c, "content", &in.Content)
	setIfPresent(c, "tags", &in.Tags)
	setIfPresent(c, "status", &in.Status)

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()
	in.Image = image

	article, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, articleEnvelope{
		Message: "article updated successfully",
		Article: toArticleResponse(article),
	})
}

// Delete handles DELETE /articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Message: "article deleted successfully"})
}

// List handles GET /articles with an optional exact status filter.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Success      200  {object}  listArticlesResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.List(c.Request().Context(), ports.ListArticlesFilter{
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(articles))
}

// Get handles GET /articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// GetBySlug handles GET /articles/slug/:slug.
//
// @Summary      Get an article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path  string  true  "Article slug"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  map[string]string
// @Router       /articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	article, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Publish handles PATCH /articles/:id/publish, the admin-only status action.
//
// @Summary      Publish or unpublish an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Article id"
// @Param        body  body  publishRequest  true  "New status"
// @Success      200  {object}  articleEnvelope
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id}/publish [patch]
func (h *ArticleHandler) Publish(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req publishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req.Status, role)
	if err != nil {
		return err
	}

	msg := "article set to draft successfully"
	if article.Status == domain.StatusPublished {
		msg = "article published successfully"
	}
	return c.JSON(http.StatusOK, articleEnvelope{Message: msg, Article: toArticleResponse(article)})
}

// setIfPresent treats an empty form value as "field not provided", so an
// omitted field and a blank one are both left untouched.
func setIfPresent(c echo.Context, field string, dst **string) {
	if v := c.FormValue(field); v != "" {
		*dst = &v
	}
}

// formImage extracts the optional "image" part of a multipart request. The
// returned close func is always safe to defer.
func formImage(c echo.Context) (*ports.Upload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file attached (or no multipart body at all).
		return nil, func() {}, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open upload: %w", err)
	}
	return &ports.Upload{Filename: fh.Filename, Content: src}, func() { _ = src.Close() }, nil
}
