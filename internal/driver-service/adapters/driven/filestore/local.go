package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes document payloads under a base directory and returns a
// URL path relative to the static file root. Swapped for object storage in
// production behind the same port.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create document directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (ls *LocalStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	name := key + extensionFor(contentType)
	path := filepath.Join(ls.baseDir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("cannot create document subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write document: %w", err)
	}

	return "/documents/" + name, nil
}

func extensionFor(contentType string) string {
	switch {
	case contentType == "application/pdf":
		return ".pdf"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	default:
		return ".bin"
	}
}
