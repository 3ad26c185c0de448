package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var (
	svgPattern    = regexp.MustCompile(`^data:image/svg\+xml;base64,`)
	binaryPattern = regexp.MustCompile(`^data:image/[\w.+-]+;base64,`)
)

// thumbnailWidths are the WebP thumbnail sizes generated per raster upload.
var thumbnailWidths = []int{600, 300}

// ImageProcessor decodes data-URI image payloads onto disk and generates
// WebP thumbnails for raster formats.
type ImageProcessor struct {
	basePath string
}

// NewImageProcessor creates an ImageProcessor rooted at basePath.
func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{basePath: basePath}
}

// ProcessDataURI writes a base64 data-URI image under subdir and returns the
// full file path on disk. SVG payloads are written as text; anything else is
// written as binary.
func (p *ImageProcessor) ProcessDataURI(data, filename, subdir string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty image data")
	}

	ext := ExtractExtension(data)
	if ext == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	fullFilename := fmt.Sprintf("%s.%s", filename, ext)

	targetDir := filepath.Join(p.basePath, subdir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if strings.Contains(data, "image/svg+xml") {
		return writeSVG(data, fullFilename, targetDir)
	}
	return writeBinaryImage(data, fullFilename, targetDir)
}

// GenerateThumbnails creates scaled WebP copies of a stored raster image in
// a sibling thumbs directory and returns their paths. SVG inputs are skipped.
func (p *ImageProcessor) GenerateThumbnails(originalPath, baseName string) ([]string, error) {
	if strings.HasSuffix(strings.ToLower(originalPath), ".svg") {
		return nil, nil
	}

	file, err := os.Open(originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbsDir := filepath.Join(filepath.Dir(originalPath), "thumbs")
	if err := os.MkdirAll(thumbsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbs directory: %w", err)
	}

	paths := make([]string, 0, len(thumbnailWidths))
	for _, width := range thumbnailWidths {
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)

		thumbPath := filepath.Join(thumbsDir, fmt.Sprintf("%s_%dpx.webp", baseName, width))
		if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
			for _, created := range paths {
				os.Remove(created)
			}
			return nil, fmt.Errorf("failed to save WebP thumbnail: %w", err)
		}
		paths = append(paths, thumbPath)
	}

	return paths, nil
}

// ExtractExtension auto-detects a file extension from a data-URI MIME prefix.
func ExtractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/svg+xml"):
		return "svg"
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	case strings.Contains(data, "data:image/gif"):
		return "gif"
	case strings.HasPrefix(data, "data:"):
		return "png"
	default:
		return ""
	}
}

func writeSVG(data, filename, targetDir string) (string, error) {
	if !svgPattern.MatchString(data) {
		return "", fmt.Errorf("invalid SVG data URI")
	}

	decoded, err := base64.StdEncoding.DecodeString(svgPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write SVG file: %w", err)
	}

	return fullPath, nil
}

func writeBinaryImage(data, filename, targetDir string) (string, error) {
	if !binaryPattern.MatchString(data) {
		return "", fmt.Errorf("invalid image data URI")
	}

	decoded, err := base64.StdEncoding.DecodeString(binaryPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return fullPath, nil
}
