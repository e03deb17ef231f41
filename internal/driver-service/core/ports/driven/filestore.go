package driven

import "context"

// IFileStore persists document payloads and returns a stable URL for each.
// The production deployment points this at object storage; the default
// adapter writes to local disk.
type IFileStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
