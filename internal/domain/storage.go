package domain

import (
	"context"
	"errors"
)

// ErrUnsupportedImage is returned when an upload is not a supported image type.
var ErrUnsupportedImage = errors.New("unsupported image type")

// BlobStore persists binary objects and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ImageStore prepares and stores event cover images.
type ImageStore interface {
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}
