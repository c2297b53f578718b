// Package storage uploads event images to S3-compatible object storage or
// to a local directory.
package storage

import (
	"fmt"
	"log/slog"
	"net/http"

	"devevent/internal/domain"
)

// S3Config holds configuration for an S3 (or S3-compatible) bucket.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint, for MinIO or R2.
	Endpoint string
	// PublicBaseURL is prepended to object keys to build public URLs. When
	// empty the virtual-hosted AWS URL is used.
	PublicBaseURL string
}

// LocalConfig holds configuration for the filesystem store.
type LocalConfig struct {
	Dir     string
	BaseURL string
}

// BlobConfig selects and configures the blob store.
type BlobConfig struct {
	Provider string
	S3       S3Config
	Local    LocalConfig
}

// NewBlobStore creates a blob store from config. Provider "s3" uses Amazon S3;
// "local" (the default) writes files under Local.Dir and also returns the
// handler that serves them, to be mounted at UploadsPath.
func NewBlobStore(config BlobConfig, logger *slog.Logger) (domain.BlobStore, http.Handler, error) {
	switch config.Provider {
	case "s3":
		store, err := NewS3Store(config.S3)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("blob store ready", "provider", "s3", "bucket", config.S3.Bucket)
		return store, nil, nil
	case "local", "":
		store, err := NewLocalStore(config.Local)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("blob store ready", "provider", "local", "dir", config.Local.Dir)
		return store, store.Handler(), nil
	default:
		return nil, nil, fmt.Errorf("unknown blob provider %q", config.Provider)
	}
}
