package handler

import (
	"github.com/pressmark/cms-api/internal/core/domain"
)

func toArticleResponse(a *domain.Article) articleResponse {
	resp := articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Slug:      a.Slug,
		ImageURL:  a.ImageURL,
		Status:    string(a.Status),
		Tags:      a.Tags,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if a.Author != nil {
		resp.Author = &authorResponse{Username: a.Author.Username, Role: a.Author.Role}
	}
	return resp
}

func toListResponse(articles []*domain.Article) listArticlesResponse {
	items := make([]articleResponse, len(articles))
	for i, a := range articles {
		items[i] = toArticleResponse(a)
	}
	return listArticlesResponse{Articles: items}
}
