// Package storage archives serialized report documents to an object store.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/tinmanjk/msos/pkg/config"
)

// Storage is the interface report archiving goes through.
type Storage interface {
	// Upload stores the reader's contents under key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile stores a local file under key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download retrieves the object at key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile retrieves the object at key into a local file.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the retrieval URL or path for key.
	GetURL(key string) string
}

// Backend identifies a storage backend.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendCOS   Backend = "cos"
)

// New creates a Storage from configuration.
func New(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch Backend(cfg.Type) {
	case BackendCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig validates the storage configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return fmt.Errorf("storage config is nil")
	}

	backend := Backend(cfg.Type)
	if backend == "" {
		backend = BackendLocal
	}

	switch backend {
	case BackendLocal:
		if cfg.LocalPath == "" {
			return fmt.Errorf("local storage path is required")
		}
	case BackendCOS:
		if cfg.Bucket == "" || cfg.Region == "" {
			return fmt.Errorf("COS bucket and region are required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return fmt.Errorf("COS credentials are required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	return nil
}
