package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is an image serialized for transport in a JSON response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG, optionally scaling it first.
// A non-positive scale or a scale of 1 keeps the original size.
func EncodePNG(img image.Image, scale float64) (*EncodedImage, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot encode empty image")
	}

	out := img
	if scale != 1.0 && scale > 0 {
		newWidth := max(int(float64(img.Bounds().Dx())*scale), 1)
		newHeight := max(int(float64(img.Bounds().Dy())*scale), 1)
		out = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
