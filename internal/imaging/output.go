package imaging

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when Save is called with a non-positive quality.
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned for output extensions that cannot be
// encoded.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Resize scales img to exactly width x height with a linear filter. The
// aspect ratio is not preserved.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Linear)
}

// FormatFromExtension validates an output extension such as "jpg", ".png"
// or "TIFF" and returns it in normalized form (lower case, no dot).
func FormatFromExtension(ext string) (string, error) {
	norm := strings.ToLower(strings.TrimPrefix(ext, "."))
	if norm == "" {
		return "", fmt.Errorf("%w: empty extension", ErrUnsupportedFormat)
	}
	if _, err := imaging.FormatFromExtension(norm); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return norm, nil
}

// Save encodes img to path. The format is chosen from the path's extension;
// quality only affects JPEG output.
func Save(img image.Image, path string, quality int) error {
	if _, err := FormatFromExtension(filepath.Ext(path)); err != nil {
		return err
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// ToNRGBA returns a copy of img as NRGBA with bounds at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}
