package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBlobStore keeps the last Put in memory.
type memoryBlobStore struct {
	key, contentType string
	body             []byte
	err              error
}

func (m *memoryBlobStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.key, m.contentType, m.body = key, contentType, body
	return "https://cdn.example.com/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestImageStore(blobs domain.BlobStore, maxWidth int) *imageStore {
	s := NewImageStore(blobs, maxWidth).(*imageStore)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestImageStore_DownscalesWideImages(t *testing.T) {
	blobs := &memoryBlobStore{}
	s := newTestImageStore(blobs, 40)

	url, err := s.UploadImage(context.Background(), "cover.png", pngBytes(t, 120, 60))
	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.example\.com/events/20250601-[0-9a-f-]{36}\.png$`, url)
	assert.Equal(t, "image/png", blobs.contentType)

	img, err := imaging.Decode(bytes.NewReader(blobs.body))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestImageStore_KeepsNarrowImages(t *testing.T) {
	blobs := &memoryBlobStore{}
	s := newTestImageStore(blobs, 400)
	data := pngBytes(t, 30, 30)

	_, err := s.UploadImage(context.Background(), "cover.png", data)
	require.NoError(t, err)
	assert.Equal(t, data, blobs.body)
}

func TestImageStore_RejectsNonImages(t *testing.T) {
	blobs := &memoryBlobStore{}
	s := newTestImageStore(blobs, 400)

	_, err := s.UploadImage(context.Background(), "notes.txt", []byte("just some text, not an image"))
	require.ErrorIs(t, err, domain.ErrUnsupportedImage)
	assert.Empty(t, blobs.key)
}

func TestImageStore_BlobFailure(t *testing.T) {
	s := newTestImageStore(&memoryBlobStore{err: errors.New("bucket gone")}, 0)

	_, err := s.UploadImage(context.Background(), "cover.png", pngBytes(t, 10, 10))
	require.ErrorContains(t, err, "bucket gone")
}
