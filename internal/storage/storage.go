package storage

import (
	"context"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage links stored media objects for clients.
type FileStorage interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// IsAbsoluteURL reports whether a stored media value is already a full URL.
// Older records stored public links instead of object keys.
func IsAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// passthroughStorage is used when no bucket is configured; keys are returned unchanged.
type passthroughStorage struct{}

// NewPassthroughStorage returns a FileStorage that links every object to its key.
func NewPassthroughStorage() FileStorage {
	return passthroughStorage{}
}

func (passthroughStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return objectKey, nil
}
