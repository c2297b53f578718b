package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	imageFolder = "events"
	jpegQuality = 85
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// imageStore sniffs, downsizes and uploads event cover images.
type imageStore struct {
	blobs    domain.BlobStore
	maxWidth int
	now      func() time.Time
}

// NewImageStore returns a domain.ImageStore writing to blobs. JPEG and PNG
// images wider than maxWidth are scaled down keeping their aspect ratio;
// maxWidth <= 0 disables resizing.
func NewImageStore(blobs domain.BlobStore, maxWidth int) domain.ImageStore {
	return &imageStore{blobs: blobs, maxWidth: maxWidth, now: time.Now}
}

func (s *imageStore) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mtype.String())
	}

	body := data
	if s.maxWidth > 0 && (mtype.Is("image/jpeg") || mtype.Is("image/png")) {
		resized, err := s.downscale(data, mtype)
		if err != nil {
			return "", err
		}
		body = resized
	}

	key := fmt.Sprintf("%s/%s-%s%s", imageFolder, s.now().UTC().Format("20060102"), uuid.NewString(), mtype.Extension())
	url, err := s.blobs.Put(ctx, key, mtype.String(), body)
	if err != nil {
		return "", fmt.Errorf("upload image %s: %w", filename, err)
	}
	return url, nil
}

func (s *imageStore) downscale(data []byte, mtype *mimetype.MIME) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}
	if img.Bounds().Dx() <= s.maxWidth {
		return data, nil
	}

	format, err := imaging.FormatFromExtension(strings.TrimPrefix(mtype.Extension(), "."))
	if err != nil {
		return nil, fmt.Errorf("image format: %w", err)
	}
	var buf bytes.Buffer
	resized := imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
