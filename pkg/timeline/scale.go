package timeline

import "github.com/stefanpenner/focusone/pkg/goal"

// Axis padding: positions may run 5% past either edge so bars that cross
// the boundary still render partially.
const (
	MinPct = -5.0
	MaxPct = 105.0
)

// Scale maps calendar days onto percentages of the axis.
type Scale struct {
	start int64
	span  float64
}

// NewScale builds the scale for r. A span is at least one millisecond.
func NewScale(r Range) Scale {
	start := r.Start.UnixMilli()
	span := r.End.UnixMilli() - start
	if span < 1 {
		span = 1
	}
	return Scale{start: start, span: float64(span)}
}

// RawPct is the unclamped position of d.
func (s Scale) RawPct(d goal.Date) float64 {
	return float64(d.UnixMilli()-s.start) / s.span * 100
}

// Pct is the position of d clamped to the padded axis.
func (s Scale) Pct(d goal.Date) float64 {
	return clamp(s.RawPct(d), MinPct, MaxPct)
}

// Span places [a, b] on the axis with a minimum width. The span is shifted,
// never shrunk below minWidth, so that it stays within [MinPct, MaxPct].
func (s Scale) Span(a, b goal.Date, minWidth float64) (left, width float64) {
	if b.Before(a) {
		a, b = b, a
	}
	left = s.Pct(a)
	width = s.Pct(b) - left
	return fitSpan(left, width, minWidth)
}

func fitSpan(left, width, minWidth float64) (float64, float64) {
	minWidth = clamp(minWidth, 0, MaxPct-MinPct)
	if width < minWidth {
		width = minWidth
	}
	if left+width > MaxPct {
		left = MaxPct - width
	}
	if left < MinPct {
		left = MinPct
	}
	return left, width
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
