// Package ocr recognizes text in rectified document frames using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Tesseract
// support is opt-in: build with
//
//	go build -tags tesseract ./...
//
// to link against libtesseract. Without the tag ExtractText returns
// ErrUnavailable and Available reports false, so the rest of the scanner
// builds without native dependencies.
//
// # Prerequisites
//
// Tesseract and its headers must be installed on the build machine:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Language data is looked up by Tesseract itself; set TESSDATA_PREFIX to
// use a non-standard location.
//
// # Supported Languages
//
// The default language is English ("eng"). Other installed languages can be
// selected by their Tesseract codes, for example "deu" or "fra".
package ocr
