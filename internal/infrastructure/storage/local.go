// Package storage persists uploaded images on the local filesystem and hands
// out the public /uploads paths they are served from.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressmark/cms-api/internal/core/ports"
)

const urlPrefix = "/uploads"

// LocalStore writes uploads into a single directory with randomized filenames
// so concurrent requests never collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns the store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the upload under "<unix-millis>-<random><ext>" and returns its
// public path. Only the extension of the client filename is kept.
func (s *LocalStore) Save(_ context.Context, up ports.Upload) (string, error) {
	name := randomName(up.Filename)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, up.Content); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return urlPrefix + "/" + name, nil
}

// Remove deletes the file behind a previously returned public path. A missing
// file or empty path is not an error.
func (s *LocalStore) Remove(_ context.Context, urlPath string) error {
	if urlPath == "" {
		return nil
	}
	name := path.Base(urlPath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func randomName(original string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: timestamp alone still avoids most collisions
		return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext(original))
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(b), ext(original))
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
