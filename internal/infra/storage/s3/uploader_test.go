package s3_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestay/internal/infra/storage/s3"
)

func newPhotoStore(t *testing.T) *s3.PhotoStore {
	t.Helper()
	store, err := s3.NewPhotoStore("localhost:9000", false, "minioadmin", "minioadmin", "photos", "http://localhost:9000", nil)
	require.NoError(t, err)
	return store
}

func TestNewPhotoStoreValidatesConfig(t *testing.T) {
	_, err := s3.NewPhotoStore("", false, "k", "s", "photos", "", nil)
	assert.ErrorContains(t, err, "endpoint is required")

	_, err = s3.NewPhotoStore("localhost:9000", false, "k", "s", "  ", "", nil)
	assert.ErrorContains(t, err, "bucket is required")
}

func TestUploadRejectsNonImageContent(t *testing.T) {
	store := newPhotoStore(t)

	_, err := store.Upload(context.Background(), "properties/p1/cover.jpg", strings.NewReader("x"), "text/html")
	assert.ErrorIs(t, err, s3.ErrUnsupportedImageType)

	// No content type and no recognizable extension.
	_, err = store.Upload(context.Background(), "properties/p1/cover.exe", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, s3.ErrUnsupportedImageType)
}

func TestUploadRequiresKeyAndReader(t *testing.T) {
	store := newPhotoStore(t)

	_, err := store.Upload(context.Background(), " / ", strings.NewReader("x"), "image/png")
	assert.ErrorContains(t, err, "object key is required")

	_, err = store.Upload(context.Background(), "properties/p1/cover.png", nil, "image/png")
	assert.ErrorContains(t, err, "reader is required")
}

func TestNoopUploaderFails(t *testing.T) {
	_, err := s3.NoopUploader{}.Upload(context.Background(), "k", strings.NewReader("x"), "image/png")
	assert.Error(t, err)
}
