// Package core provides fundamental types and utilities shared by the game,
// its renderers and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Span is an interval on a single axis, used for extent-based collision tests.
// Overlap is strict: spans that merely touch at an endpoint do not overlap.
type Span struct {
	Min, Max float64
}

// SpanAround returns the extent of a circle (or any centered shape) on one axis.
func SpanAround(center, radius float64) Span {
	return Span{Min: center - radius, Max: center + radius}
}

// SpanOf returns the span starting at start with the given length.
func SpanOf(start, length float64) Span {
	return Span{Min: start, Max: start + length}
}

// Overlaps reports whether the two spans share any interior point.
func (s Span) Overlaps(other Span) bool {
	return s.Max > other.Min && s.Min < other.Max
}

// Len returns the length of the span.
func (s Span) Len() float64 {
	return s.Max - s.Min
}

// Mid returns the midpoint of the span.
func (s Span) Mid() float64 {
	return s.Min + s.Len()/2
}

// Rect represents an axis-aligned box in screen cells.
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

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
