package service

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cookbook/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func newTestImageService(t *testing.T) *ImageService {
	t.Helper()
	return NewImageService(&config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1024 * 1024,
	})
}

func TestImageService_Save(t *testing.T) {
	svc := newTestImageService(t)

	url, err := svc.Save(UploadImageInput{Filename: "photo.png", Content: pngBytes(t)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/uploads/")
	_, statErr := os.Stat(filepath.Join(svc.uploadDir, name))
	assert.NoError(t, statErr)
}

func TestImageService_Save_Rejections(t *testing.T) {
	svc := newTestImageService(t)

	t.Run("empty upload", func(t *testing.T) {
		_, err := svc.Save(UploadImageInput{Filename: "empty.png"})
		assertValidationError(t, err)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := svc.Save(UploadImageInput{Filename: "notes.txt", Content: []byte("just text, no image here")})
		assertValidationError(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		small := NewImageService(&config.Config{UploadDir: t.TempDir(), MaxUploadBytes: 10})
		_, err := small.Save(UploadImageInput{Filename: "big.png", Content: pngBytes(t)})
		assertValidationError(t, err)
	})
}

func TestImageService_Remove(t *testing.T) {
	svc := newTestImageService(t)

	url, err := svc.Save(UploadImageInput{Filename: "photo.png", Content: pngBytes(t)})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(url))
	name := strings.TrimPrefix(url, "/uploads/")
	_, statErr := os.Stat(filepath.Join(svc.uploadDir, name))
	assert.True(t, os.IsNotExist(statErr))

	t.Run("external url is ignored", func(t *testing.T) {
		assert.NoError(t, svc.Remove("https://example.com/pic.jpg"))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, svc.Remove("/uploads/gone.png"))
	})
}
