package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/security"
)

// ErrStorageUnavailable marks the class of upload failures (missing media
// root, permission denied) that callers are expected to survive by embedding
// the image inline instead of storing a file.
var ErrStorageUnavailable = errors.New("media storage unavailable")

// Uploader stores data-URI image payloads under the media base path and
// returns their public URLs.
type Uploader struct {
	basePath     string
	baseURL      string
	uploadPrefix string
	processor    *ImageProcessor
	logger       *logging.ChanneledLogger
}

// NewUploader creates an Uploader rooted at basePath, serving files under
// baseURL+uploadPrefix.
func NewUploader(basePath, baseURL, uploadPrefix string, logger *logging.ChanneledLogger) *Uploader {
	return &Uploader{
		basePath:     basePath,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		uploadPrefix: uploadPrefix,
		processor:    NewImageProcessor(basePath),
		logger:       logger,
	}
}

// Upload persists a data-URI payload and returns its public URL. The stored
// filename is a ULID derived from the original name's stem so repeat uploads
// never collide. Thumbnail generation is best-effort and never fails the
// upload.
func (u *Uploader) Upload(originalName, dataURI string) (string, error) {
	if u.basePath == "" {
		return "", fmt.Errorf("no media base path configured: %w", ErrStorageUnavailable)
	}

	name := security.GenerateULID()
	if stem := fileStem(originalName); stem != "" {
		name = fmt.Sprintf("%s_%s", stem, name)
	}

	storedPath, err := u.processor.ProcessDataURI(dataURI, name, "uploads")
	if err != nil {
		if classifyStorageError(err) {
			u.logger.Media().Warn("Upload storage unavailable", "error", err.Error())
			return "", fmt.Errorf("upload failed: %w", ErrStorageUnavailable)
		}
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if _, err := u.processor.GenerateThumbnails(storedPath, name); err != nil {
		u.logger.Media().Warn("Thumbnail generation failed", "file", storedPath, "error", err.Error())
	}

	publicURL := fmt.Sprintf("%s%s/%s", u.baseURL, u.uploadPrefix, filepath.Base(storedPath))
	u.logger.Media().Info("Image uploaded", "file", filepath.Base(storedPath), "url", publicURL)
	return publicURL, nil
}

// classifyStorageError reports whether an error belongs to the
// storage-unavailable class rather than a payload problem.
func classifyStorageError(err error) bool {
	if os.IsPermission(err) || os.IsNotExist(err) {
		return true
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "read-only file system") ||
		strings.Contains(msg, "no space left")
}

func fileStem(name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return sanitizeStem(base)
}

func sanitizeStem(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
