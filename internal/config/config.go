// Package config loads scanner settings from an optional YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/imaging"
	"github.com/ironsheep/image-to-scan/internal/scan"
)

// EnvLogLevel overrides the log_level setting.
const EnvLogLevel = "IMAGE_TO_SCAN_LOG_LEVEL"

// Config holds every scanner setting. Fields missing from a settings file
// keep their defaults.
type Config struct {
	// LogLevel is DEBUG, INFO, WARN, ERROR or NOTSET.
	LogLevel string `yaml:"log_level"`

	Denoise   imaging.DenoiseParams `yaml:"denoise"`
	Edges     EdgesConfig           `yaml:"edges"`
	Selection SelectionConfig       `yaml:"selection"`
	Contrast  ContrastConfig        `yaml:"contrast"`
	Output    OutputConfig          `yaml:"output"`
	OCR       OCRConfig             `yaml:"ocr"`
}

// EdgesConfig holds the Canny hysteresis thresholds.
type EdgesConfig struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// SelectionConfig controls how the page outline is chosen among the traced
// contours.
type SelectionConfig struct {
	// EpsilonFraction is the polygon simplification tolerance as a fraction
	// of the contour perimeter.
	EpsilonFraction float64 `yaml:"epsilon_fraction"`

	// WidthTolerance is the accepted relative width difference of the two
	// widest outlines. Zero requires equal widths.
	WidthTolerance float64 `yaml:"width_tolerance"`

	// MaxContours caps how many of the largest contours are simplified.
	// Zero means all of them.
	MaxContours int `yaml:"max_contours"`
}

// ContrastConfig selects the post-processing of the rectified page.
type ContrastConfig struct {
	// Mode is gray, gray-rgb, color or raw.
	Mode string `yaml:"mode"`

	// ClipLimit and Tiles parameterize contrast equalization.
	ClipLimit float64 `yaml:"clip_limit"`
	Tiles     int     `yaml:"tiles"`
}

// OutputConfig controls where and how scans are written.
type OutputConfig struct {
	// Extension picks the output format and replaces the source extension.
	Extension string `yaml:"extension"`

	// Suffix is appended to the source file name.
	Suffix string `yaml:"suffix"`

	// Width and Height resize the scan when both are set.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	JPEGQuality int `yaml:"jpeg_quality"`
}

// OCRConfig controls text recognition of the scanned page.
type OCRConfig struct {
	Enabled bool `yaml:"enabled"`

	// Language is a Tesseract language code such as "eng".
	Language string `yaml:"language"`
}

// Default returns the built-in settings.
func Default() *Config {
	opts := scan.DefaultOptions()
	return &Config{
		LogLevel: "INFO",
		Denoise:  opts.Denoise,
		Edges: EdgesConfig{
			Low:  opts.CannyLow,
			High: opts.CannyHigh,
		},
		Selection: SelectionConfig{
			EpsilonFraction: detection.DefaultEpsilonFraction,
		},
		Contrast: ContrastConfig{
			Mode:      opts.Mode.String(),
			ClipLimit: opts.ClipLimit,
			Tiles:     opts.TileGrid.X,
		},
		Output: OutputConfig{
			Extension:   "jpg",
			Suffix:      "-scanned",
			JPEGQuality: imaging.DefaultJPEGQuality,
		},
		OCR: OCRConfig{
			Language: "eng",
		},
	}
}

// Load reads the YAML file at path over the defaults. Environment
// references such as ${HOME} are expanded before parsing and unknown keys
// are rejected. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		data = []byte(os.ExpandEnv(string(data)))

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the settings that the scan options do not cover.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := imaging.FormatFromExtension(c.Output.Extension); err != nil {
		return err
	}
	if _, err := c.ScanOptions(); err != nil {
		return err
	}
	return nil
}

// ScanOptions converts the configuration into pipeline options.
func (c *Config) ScanOptions() (scan.Options, error) {
	mode, err := scan.ParseMode(c.Contrast.Mode)
	if err != nil {
		return scan.Options{}, err
	}

	opts := scan.Options{
		Denoise:         c.Denoise,
		CannyLow:        c.Edges.Low,
		CannyHigh:       c.Edges.High,
		EpsilonFraction: c.Selection.EpsilonFraction,
		WidthTolerance:  c.Selection.WidthTolerance,
		MaxContours:     c.Selection.MaxContours,
		ClipLimit:       c.Contrast.ClipLimit,
		TileGrid:        image.Pt(c.Contrast.Tiles, c.Contrast.Tiles),
		Mode:            mode,
		OutputSize:      image.Pt(c.Output.Width, c.Output.Height),
	}

	if err := opts.Validate(); err != nil {
		return scan.Options{}, err
	}
	return opts, nil
}
