// Package core provides fundamental types and utilities for the runner.
// It contains no presentation dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// ComputeBounds returns the box of the given full size centered on center.
// Zero or negative sizes are not special-cased: a negative size yields a box
// with Min > Max on that axis, which never overlaps anything.
func ComputeBounds(center, size mgl32.Vec3) Bounds {
	half := size.Mul(0.5)
	return Bounds{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// BoxesOverlap reports whether box A and box B intersect on all three axes.
// Touching faces count as overlapping, so a body resting exactly on top of a
// box is in contact with it. Inverted boxes never overlap.
func BoxesOverlap(minA, maxA, minB, maxB mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		// Written as negated ordered comparisons so NaN falls through to false.
		if !(minA[axis] <= maxA[axis]) || !(minB[axis] <= maxB[axis]) {
			return false
		}
		if !(minA[axis] <= maxB[axis]) || !(minB[axis] <= maxA[axis]) {
			return false
		}
	}
	return true
}

// Overlaps is the method form of BoxesOverlap.
func (b Bounds) Overlaps(other Bounds) bool {
	return BoxesOverlap(b.Min, b.Max, other.Min, other.Max)
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float32 value to be within [min, max].
func ClampF(val, min, max float32) float32 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates from a toward b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
