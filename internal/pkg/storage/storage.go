package storage

import (
	"context"
	"io"
	"time"
)

// Storage blob storage interface. Audio objects are written once by the
// synthesis pipeline and read back through presigned URLs.
type Storage interface {
	// Upload stores an object and returns its access URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download opens an object for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedDownloadURL returns a time-limited playback URL
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType returns the backend type
	GetStorageType() string
}

// StorageType backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // local filesystem
	StorageTypeOSS   StorageType = "oss"   // Aliyun OSS
)
