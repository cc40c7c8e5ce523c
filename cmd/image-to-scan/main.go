package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-scan/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type flags struct {
	configPath     string
	logLevel       string
	extension      string
	suffix         string
	size           string
	mode           string
	widthTolerance float64
	ocr            bool
	language       string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "image-to-scan [flags] FILE...",
		Short: "Turn photos of paper documents into flat, upright scans",
		Long: `image-to-scan finds the sheet of paper in each photo, corrects the
perspective and writes the result next to the source file as
<name><suffix>.<extension>.

Photos in which no document is recognised are skipped with a warning.`,
		Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &f, args, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd, &f)

	return cmd
}

func bindFlags(cmd *cobra.Command, f *flags) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML settings file")
	fl.StringVar(&f.logLevel, "log", "INFO", "log level: DEBUG, INFO, WARN, ERROR or NOTSET")
	fl.StringVar(&f.extension, "extension", "jpg", "output format extension (jpg, png, gif, tif, bmp)")
	fl.StringVar(&f.suffix, "suffix", "-scanned", "appended to the source file name")
	fl.StringVar(&f.size, "size", "", "resize the scan to WIDTHxHEIGHT, e.g. 1240x1754")
	fl.StringVar(&f.mode, "mode", "gray", "post-processing: gray, gray-rgb, color or raw")
	fl.Float64Var(&f.widthTolerance, "width-tolerance", 0, "accepted relative width difference of the two widest outlines")
	fl.BoolVar(&f.ocr, "ocr", false, "also write the recognised text to <output>.txt")
	fl.StringVar(&f.language, "lang", "eng", "OCR language")
}

// run loads the configuration, applies explicitly set flags over it and
// scans every file.
func run(cmd *cobra.Command, f *flags, files []string, stderr io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := config.NewLogger(stderr, level)
	logger.Debug("starting", "version", Version, "files", len(files))

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file: %w", err)
		}
	}

	s, err := newScanner(cfg, logger)
	if err != nil {
		return err
	}

	failed := 0
	for _, file := range files {
		if err := s.scanFile(file); err != nil {
			logger.Error("scan failed", "file", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// applyFlags overrides cfg with the flags given on the command line. Flags
// left at their defaults do not mask values from the settings file.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("log") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("extension") {
		cfg.Output.Extension = f.extension
	}
	if fl.Changed("suffix") {
		cfg.Output.Suffix = f.suffix
	}
	if fl.Changed("size") {
		size, err := parseSize(f.size)
		if err != nil {
			return err
		}
		cfg.Output.Width, cfg.Output.Height = size.X, size.Y
	}
	if fl.Changed("mode") {
		cfg.Contrast.Mode = f.mode
	}
	if fl.Changed("width-tolerance") {
		cfg.Selection.WidthTolerance = f.widthTolerance
	}
	if fl.Changed("ocr") {
		cfg.OCR.Enabled = f.ocr
	}
	if fl.Changed("lang") {
		cfg.OCR.Language = f.language
	}
	return nil
}

var errInvalidSize = errors.New("size must be WIDTHxHEIGHT with positive integers")

// parseSize parses "WIDTHxHEIGHT". The empty string means no resize.
func parseSize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("%w: %q", errInvalidSize, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w <= 0 {
		return image.Point{}, fmt.Errorf("%w: %q", errInvalidSize, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h <= 0 {
		return image.Point{}, fmt.Errorf("%w: %q", errInvalidSize, s)
	}
	return image.Pt(w, h), nil
}
