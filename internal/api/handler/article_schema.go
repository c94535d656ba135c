package handler

import "time"

// Response-only types owned by the transport layer. These are intentionally
// separate from the domain types so the JSON contract is not coupled to
// internal service changes.

type authorResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type articleResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Slug      string          `json:"slug"`
	ImageURL  string          `json:"image_url,omitempty"`
	Status    string          `json:"status"`
	Tags      []string        `json:"tags"`
	Author    *authorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// articleEnvelope wraps write responses with a human-readable message.
type articleEnvelope struct {
	Message string          `json:"message"`
	Article articleResponse `json:"article"`
}

type listArticlesResponse struct {
	Articles []articleResponse `json:"articles"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// publishRequest is the body of the dedicated publish/unpublish action. The
// status enum is validated by the service, not here: this endpoint is the only
// path that enforces membership at all.
type publishRequest struct {
	Status string `json:"status"`
}
