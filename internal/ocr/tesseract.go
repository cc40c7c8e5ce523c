//go:build tesseract

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether Tesseract support is compiled in.
func Available() bool { return true }

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}

func recognize(data []byte, language string) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	// Get word-level bounding boxes
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	regions := make([]TextRegion, 0, len(boxes))
	if err == nil {
		for _, box := range boxes {
			if box.Word == "" {
				continue
			}
			regions = append(regions, TextRegion{
				Text:       box.Word,
				Confidence: float64(box.Confidence) / 100.0,
				Bounds: Bounds{
					X1: box.Box.Min.X,
					Y1: box.Box.Min.Y,
					X2: box.Box.Max.X,
					Y2: box.Box.Max.Y,
				},
			})
		}
	}

	return &Result{
		FullText: text,
		Regions:  regions,
	}, nil
}
