package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cookbook/internal/config"
	"cookbook/internal/models"
	"cookbook/internal/observability"

	"github.com/google/uuid"
)

const DefaultUploadDir = "uploads"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadImageInput struct {
	Filename string
	Content  []byte
}

// ImageService stores recipe images on local disk under a random name and
// returns the public URL path they are served from.
type ImageService struct {
	uploadDir      string
	maxUploadBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultUploadDir
	var maxUploadBytes int64 = 10 * 1024 * 1024

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadBytes > 0 {
			maxUploadBytes = int64(cfg.MaxUploadBytes)
		}
	}

	return &ImageService{
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
	}
}

// Save validates the uploaded bytes and writes them to the upload directory.
// The returned path is relative to the server root, e.g. /uploads/<name>.
func (s *ImageService) Save(in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		observability.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		observability.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}

	// Trust the sniffed type, not the client-provided one.
	detectedType := http.DetectContentType(in.Content)
	ext, ok := imageExtensions[strings.ToLower(detectedType)]
	if !ok {
		observability.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return "", models.NewValidationError("Invalid image type")
	}

	name := uuid.NewString() + ext
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		observability.ImageUploadsTotal.WithLabelValues("error").Inc()
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), in.Content, 0o644); err != nil {
		observability.ImageUploadsTotal.WithLabelValues("error").Inc()
		return "", models.NewInternalError(err)
	}

	observability.ImageUploadsTotal.WithLabelValues("saved").Inc()
	return "/uploads/" + name, nil
}

// Remove deletes a previously saved image. Unknown or external URLs are
// ignored so callers can pass whatever ImageURL a recipe carries.
func (s *ImageService) Remove(imageURL string) error {
	name, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		return models.NewInternalError(err)
	}
	return nil
}
