package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is a single (timestamp, dollars) sample of a time series
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}

// Series is an ordered, non-decreasing-in-time sequence of points.
// Invested series may hold two points at the same timestamp so that they
// render as a step function.
type Series []Point

// Append adds a point at the end of the series
func (s *Series) Append(t time.Time, v decimal.Decimal) {
	*s = append(*s, Point{Time: t, Value: v})
}

// Last returns the final point of the series and false when it is empty
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Collapse returns the raw value series: one point per timestamp, where the
// last value recorded for a timestamp wins. It strips the duplicate points
// that only exist to draw steps.
func (s Series) Collapse() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
