// Package geometry provides the planar primitives used by document detection
// and rectification.
//
// Coordinates are floating-point pixel positions with the origin at the
// top-left corner of the image, X increasing rightward and Y increasing
// downward. All values in this package are immutable once constructed and all
// functions are pure, so they are safe for concurrent use.
//
// # Corner Ordering
//
// OrderCorners canonicalizes four unordered points into top-left, top-right,
// bottom-right, bottom-left order using the sum (x+y) and difference (y-x) of
// each point:
//
//   - top-left: smallest sum
//   - bottom-right: largest sum
//   - top-right: smallest difference
//   - bottom-left: largest difference
//
// When two points share an extreme value the one that appears first in the
// input wins.
//
// # Homography
//
// NewHomography solves the projective transform defined by exactly four point
// correspondences. Over- and under-determined systems are not supported.
package geometry
