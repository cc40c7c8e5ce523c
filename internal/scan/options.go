package scan

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/imaging"
)

// ErrInvalidOptions is returned by New for inconsistent settings.
var ErrInvalidOptions = errors.New("scan: invalid options")

// Mode selects the post-processing applied to a rectified frame.
type Mode int

const (
	// ModeGray converts to intensity and equalizes local contrast. The
	// frame is a single-channel *image.Gray.
	ModeGray Mode = iota

	// ModeGrayRGB is ModeGray expanded back to three equal channels.
	ModeGrayRGB

	// ModeColor equalizes the lightness channel and keeps colour.
	ModeColor

	// ModeRaw returns the resampled pixels untouched.
	ModeRaw
)

var modeNames = [...]string{
	ModeGray:    "gray",
	ModeGrayRGB: "gray-rgb",
	ModeColor:   "color",
	ModeRaw:     "raw",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the names printed by Mode.String, case-insensitively.
// The empty string selects ModeGray.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeGray, nil
	}
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return ModeGray, fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(modeNames[:], ", "))
}

// Options configures a Pipeline.
type Options struct {
	// Denoise controls the smoothing applied before edge detection.
	Denoise imaging.DenoiseParams

	// CannyLow and CannyHigh are the hysteresis thresholds for edge
	// detection.
	CannyLow  int
	CannyHigh int

	// EpsilonFraction is the polygon simplification tolerance as a fraction
	// of each contour's perimeter.
	EpsilonFraction float64

	// WidthTolerance is the accepted relative width difference between the
	// two widest quadrilaterals. Zero requires exact equality.
	WidthTolerance float64

	// MaxContours caps how many of the largest contours are simplified.
	// Zero means no cap.
	MaxContours int

	// ClipLimit and TileGrid parameterize local contrast equalization.
	ClipLimit float64
	TileGrid  image.Point

	// Mode selects the post-processing of the rectified frame.
	Mode Mode

	// OutputSize, when non-zero, resizes the final frame to exactly this
	// size without preserving aspect ratio.
	OutputSize image.Point
}

// DefaultOptions returns the settings tuned for photographed paper
// documents.
func DefaultOptions() Options {
	return Options{
		Denoise:         imaging.DefaultDenoiseParams(),
		CannyLow:        imaging.DefaultCannyLow,
		CannyHigh:       imaging.DefaultCannyHigh,
		EpsilonFraction: detection.DefaultEpsilonFraction,
		ClipLimit:       imaging.DefaultClipLimit,
		TileGrid:        image.Pt(imaging.DefaultTileGrid, imaging.DefaultTileGrid),
		Mode:            ModeGray,
	}
}

// Validate reports the first inconsistent setting.
func (o Options) Validate() error {
	switch {
	case o.CannyLow < 0 || o.CannyHigh < o.CannyLow:
		return fmt.Errorf("%w: canny thresholds %d/%d", ErrInvalidOptions, o.CannyLow, o.CannyHigh)
	case o.EpsilonFraction <= 0:
		return fmt.Errorf("%w: epsilon fraction %g must be positive", ErrInvalidOptions, o.EpsilonFraction)
	case o.WidthTolerance < 0 || o.WidthTolerance >= 1:
		return fmt.Errorf("%w: width tolerance %g outside [0, 1)", ErrInvalidOptions, o.WidthTolerance)
	case o.MaxContours < 0:
		return fmt.Errorf("%w: max contours %d", ErrInvalidOptions, o.MaxContours)
	case o.TileGrid.X < 0 || o.TileGrid.Y < 0:
		return fmt.Errorf("%w: tile grid %v", ErrInvalidOptions, o.TileGrid)
	case o.OutputSize.X < 0 || o.OutputSize.Y < 0 || (o.OutputSize.X == 0) != (o.OutputSize.Y == 0):
		return fmt.Errorf("%w: output size %dx%d", ErrInvalidOptions, o.OutputSize.X, o.OutputSize.Y)
	case o.Mode < ModeGray || o.Mode > ModeRaw:
		return fmt.Errorf("%w: %v", ErrInvalidOptions, o.Mode)
	}
	return nil
}
