package ports

import (
	"context"
	"io"
)

// Upload is an incoming file attached to a multipart request.
type Upload struct {
	// Filename is the client-supplied name; only its extension is kept.
	Filename string
	Content  io.Reader
}

// FileStore persists uploaded files and serves them back by public URL path.
type FileStore interface {
	// Save writes the upload under a collision-free name and returns the
	// public path it will be served from (e.g. "/uploads/1712345-ab12.png").
	Save(ctx context.Context, up Upload) (string, error)
	// Remove deletes the file behind a previously returned path. Removing a
	// missing file is not an error.
	Remove(ctx context.Context, urlPath string) error
}
