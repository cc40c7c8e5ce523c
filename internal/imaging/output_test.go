package imaging

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResize(t *testing.T) {
	img := createInMemoryImage(100, 50, color.RGBA{10, 20, 30, 255})

	out := Resize(img, 30, 60)

	if out.Bounds() != image.Rect(0, 0, 30, 60) {
		t.Errorf("bounds: got %v, want 30x60", out.Bounds())
	}
	if c := out.NRGBAAt(15, 30); c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("color: got %v, want (10,20,30)", c)
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext     string
		want    string
		wantErr bool
	}{
		{"jpg", "jpg", false},
		{".PNG", "png", false},
		{"jpeg", "jpeg", false},
		{"tiff", "tiff", false},
		{"bmp", "bmp", false},
		{"webp", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, err := FormatFromExtension(tt.ext)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("error: got %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := createInMemoryImage(24, 16, color.RGBA{200, 100, 50, 255})

	for _, name := range []string{"out.png", "out.jpg", "out.tif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(img, path, 0); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if loaded.Bounds().Dx() != 24 || loaded.Bounds().Dy() != 16 {
				t.Errorf("dimensions: got %v, want 24x16", loaded.Bounds())
			}
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	img := createInMemoryImage(4, 4, color.White)

	err := Save(img, path, 90)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error: got %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an unsupported format")
	}
}

func TestEncodePNG(t *testing.T) {
	img := createInMemoryImage(40, 20, color.RGBA{0, 0, 255, 255})

	result, err := EncodePNG(img, 0.5)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if result.Width != 20 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	pngImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if pngImg.Bounds().Dx() != 20 {
		t.Errorf("decoded width: got %d, want 20", pngImg.Bounds().Dx())
	}
}

func TestEncodePNG_Empty(t *testing.T) {
	if _, err := EncodePNG(image.NewGray(image.Rect(0, 0, 0, 0)), 1); err == nil {
		t.Error("EncodePNG should fail for an empty image")
	}
}
