package types

import "math"

// Interval is a closed range [Min, Max] on the real line. An interval with
// Min > Max is empty.
type Interval struct {
	Min float64
	Max float64
}

var (
	// The empty interval. Its union with any interval yields that interval.
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

	// An interval covering the whole real line.
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// Create a new interval.
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Get the interval length. Empty intervals report a negative size.
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Returns true if the interval contains no values.
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max
}

// Returns true if x lies inside the interval; the end points are included.
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Returns true if x lies strictly inside the interval.
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp x to the interval range.
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Returns true if the two intervals share at least one value.
func (i Interval) Overlaps(other Interval) bool {
	return i.Min <= other.Max && other.Min <= i.Max
}

// Get the smallest interval that encloses both intervals.
func (i Interval) Union(other Interval) Interval {
	return Interval{
		Min: math.Min(i.Min, other.Min),
		Max: math.Max(i.Max, other.Max),
	}
}

// Grow the interval by delta/2 on each side.
func (i Interval) Expand(delta float64) Interval {
	pad := delta / 2
	return Interval{Min: i.Min - pad, Max: i.Max + pad}
}

// Get the interval mid point.
func (i Interval) Mid() float64 {
	return i.Min + (i.Max-i.Min)*0.5
}
