// Package imaging provides the raster operations behind document scanning.
//
// It covers every pixel-level step of the pipeline: decoding and caching
// source files, grayscale conversion and edge-preserving denoising, Canny
// edge detection, perspective resampling through a homography, contrast
// limited adaptive histogram equalization (CLAHE), resizing, and encoding
// results for disk or transport.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Functions that take an *image.Gray honour its bounds, so sub-images can be
// processed directly. Functions that build new images return them with
// bounds at the origin unless documented otherwise.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their inputs, so they can run concurrently on
// the same source image.
//
// # Error Handling
//
// Pure transforms cannot fail and return no error. File operations (Open,
// Save) and encoders wrap the underlying error with context; Save and
// FormatFromExtension report unknown extensions with ErrUnsupportedFormat.
package imaging
