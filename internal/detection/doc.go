// Package detection finds the boundary of a photographed document.
//
// The package covers the step between a binary edge map and the four corners
// of the page:
//
//  1. Contour tracing: TraceContours follows every outer and hole border of
//     the edge map (Suzuki-Abe border following, no hierarchy).
//  2. Simplification: Simplify reduces each contour to its corner vertices
//     with a tolerance proportional to the contour perimeter.
//  3. Selection: Selector keeps the two widest four-vertex candidates and
//     accepts the widest only when both agree on width.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Contour vertices are absolute image coordinates, so an edge map whose
// bounds do not start at (0, 0) produces contours in the same space as the
// source image.
//
// # Detection Failure
//
// Failing to find a document is an ordinary result. Select returns errors
// wrapping ErrNotFound; callers that only care whether a page was found test
// with errors.Is(err, ErrNotFound).
package detection
