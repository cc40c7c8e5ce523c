//go:build !tesseract

package ocr

// Available reports whether Tesseract support is compiled in.
func Available() bool { return false }

// Version returns the linked Tesseract version.
func Version() string { return "" }

func recognize([]byte, string) (*Result, error) {
	return nil, ErrUnavailable
}
