package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// DefaultLanguage is used when ExtractText is called without a language.
const DefaultLanguage = "eng"

var (
	// ErrUnavailable is returned when the binary was built without
	// Tesseract support.
	ErrUnavailable = errors.New("ocr: built without tesseract support")

	// ErrEmptyImage is returned for a nil or zero-sized image.
	ErrEmptyImage = errors.New("ocr: empty image")
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the image.
	Bounds Bounds `json:"bounds"`
}

// Result contains the text recognized in an image.
type Result struct {
	// FullText is all recognized text with the engine's spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words. It may be empty when word boxes
	// are unavailable even though FullText is set.
	Regions []TextRegion `json:"regions"`
}

// ExtractText recognizes the text in img, typically a rectified document
// frame.
//
// Parameters:
//   - img: Source image. Word bounds are reported in its coordinate space.
//   - language: Tesseract language code such as "eng" or "deu"; empty
//     means DefaultLanguage. The language data must be installed.
//
// Builds without the "tesseract" tag return ErrUnavailable.
func ExtractText(img image.Image, language string) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	result, err := recognize(buf.Bytes(), language)
	if err != nil {
		return nil, err
	}

	// The encoded PNG starts at the origin.
	offset := img.Bounds().Min
	for i := range result.Regions {
		b := &result.Regions[i].Bounds
		b.X1 += offset.X
		b.X2 += offset.X
		b.Y1 += offset.Y
		b.Y2 += offset.Y
	}
	return result, nil
}
