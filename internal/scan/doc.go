// Package scan turns a photographed document into a flat, top-down image.
//
// A Pipeline runs the complete detection path: grayscale conversion,
// denoising, Canny edges, contour tracing, polygon simplification, selection
// of the document quadrilateral and perspective rectification. Each step is
// delegated to a Raster, so the decision logic can be driven with synthetic
// contours in tests (see Pipeline.ScanContours).
//
// Detection failure is an ordinary result, not an error: Scan returns an
// Outcome with StatusNotFound and a Diagnostics record explaining why. Errors
// are reserved for unusable input such as a nil or empty image.
//
// The standalone primitives geometry.OrderCorners and Rectifier.Rectify are
// available to callers that already know where the document is.
//
// Pipelines and Rectifiers hold no mutable state and are safe for concurrent
// use.
package scan
