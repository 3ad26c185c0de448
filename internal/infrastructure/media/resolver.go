// Package media provides image upload, processing, and URL resolution for
// portfolio content.
package media

import (
	"strings"

	"github.com/dzakyfr/portfolio-go/pkg/config"
)

// ResolveImageURL maps a stored image reference to a renderable URL. Empty
// input resolves to empty; absolute and self-contained references pass
// through untouched; upload paths and bare filenames are rewritten against
// the configured media base. The function is pure and idempotent.
func ResolveImageURL(ref string) string {
	return resolveImageURL(config.MediaBaseURL, config.UploadPrefix, ref)
}

func resolveImageURL(baseURL, uploadPrefix, ref string) string {
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	if strings.HasPrefix(ref, "data:") {
		return ref
	}

	base := strings.TrimSuffix(baseURL, "/")

	if strings.HasPrefix(ref, uploadPrefix) {
		return base + ref
	}

	// Other rooted paths are local public assets served as-is.
	if strings.HasPrefix(ref, "/") {
		return ref
	}

	// Bare filename: assume it lives under the upload path.
	return base + uploadPrefix + "/" + ref
}
