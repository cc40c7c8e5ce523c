package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/image-to-scan/internal/config"
	"github.com/ironsheep/image-to-scan/internal/imaging"
	"github.com/ironsheep/image-to-scan/internal/ocr"
	"github.com/ironsheep/image-to-scan/internal/scan"
)

// scanner applies one pipeline and output policy to a batch of files.
type scanner struct {
	pipeline *scan.Pipeline
	output   config.OutputConfig
	ocr      config.OCRConfig
	logger   *slog.Logger
}

func newScanner(cfg *config.Config, logger *slog.Logger) (*scanner, error) {
	opts, err := cfg.ScanOptions()
	if err != nil {
		return nil, err
	}
	p, err := scan.New(opts)
	if err != nil {
		return nil, err
	}
	if cfg.OCR.Enabled && !ocr.Available() {
		logger.Warn("text recognition requested but this build has no tesseract support")
	}
	return &scanner{
		pipeline: p,
		output:   cfg.Output,
		ocr:      cfg.OCR,
		logger:   logger,
	}, nil
}

// scanFile scans one photo. A photo without a recognisable document is
// reported and skipped; only unreadable input and write failures return an
// error.
func (s *scanner) scanFile(path string) error {
	log := s.logger.With("file", path)

	img, err := imaging.Open(path)
	if err != nil {
		return err
	}

	out, err := s.pipeline.Scan(img)
	if err != nil {
		return err
	}

	d := out.Diagnostics
	log.Debug("contours", "traced", d.Contours, "considered", d.Considered, "quads", d.Quads, "widths", d.Widths)
	if !out.Found() {
		log.Warn("no document found", "reason", d.Reason, "selected", d.Selected)
		return nil
	}
	log.Debug("document", "corners", d.Corners, "size", d.RectifiedSize)

	dest := imaging.ScannedPath(path, s.output.Suffix, s.output.Extension)
	if err := imaging.Save(out.Frame.Image, dest, s.output.JPEGQuality); err != nil {
		return err
	}
	log.Info("saved", "output", dest, "width", out.Frame.Width, "height", out.Frame.Height)

	if s.ocr.Enabled && ocr.Available() {
		if err := s.writeText(out.Frame, dest); err != nil {
			return err
		}
	}
	return nil
}

// writeText recognizes the text of frame and stores it as dest + ".txt".
func (s *scanner) writeText(frame *scan.Frame, dest string) error {
	res, err := ocr.ExtractText(frame.Image, s.ocr.Language)
	if err != nil {
		return fmt.Errorf("text recognition: %w", err)
	}
	txt := dest + ".txt"
	if err := os.WriteFile(txt, []byte(res.FullText), 0o644); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	s.logger.Info("saved text", "output", txt, "words", len(res.Regions))
	return nil
}
