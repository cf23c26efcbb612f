package timeline

import "unicode/utf8"

// Placement says where a bar's title is drawn.
type Placement string

const (
	PlaceInside        Placement = "inside"
	PlaceOutsideRight  Placement = "outside-right"
	PlaceOutsideLeft   Placement = "outside-left"
	PlaceOutsideCenter Placement = "outside-center"
)

// Outside reports whether the label is drawn beside the bar.
func (p Placement) Outside() bool { return p != PlaceInside }

// Detail is the label detail level.
type Detail string

const (
	DetailCompact  Detail = "compact"
	DetailExpanded Detail = "expanded"
)

const (
	charWidthPx    = 7
	labelPaddingPx = 12
	minLabelPx     = 32
	maxLabelPx     = 280

	// A bar within this distance of an axis edge, in percent, gets its
	// outside label on the side facing the middle.
	edgeZonePct = 15

	// Rows at least this tall fit a title and a date subtitle.
	expandedRowPx = 36
)

// EstimateLabelWidth guesses the pixel width of a title without measuring
// text.
func EstimateLabelWidth(title string) float64 {
	w := float64(utf8.RuneCountInString(title)*charWidthPx + labelPaddingPx)
	return clamp(w, minLabelPx, maxLabelPx)
}

// PlaceLabel decides label placement for a bar at [leftPct, leftPct+widthPct]
// on an axis widthPx wide.
func PlaceLabel(title string, leftPct, widthPct, widthPx float64) Placement {
	barPx := widthPct / 100 * widthPx
	if barPx >= EstimateLabelWidth(title) {
		return PlaceInside
	}
	switch {
	case leftPct < edgeZonePct:
		return PlaceOutsideRight
	case leftPct+widthPct >= 100-edgeZonePct:
		return PlaceOutsideLeft
	}
	return PlaceOutsideCenter
}

// DetailFor returns the detail level for a label in a row of rowPx.
func DetailFor(p Placement, rowPx float64) Detail {
	if p == PlaceInside && rowPx >= expandedRowPx {
		return DetailExpanded
	}
	return DetailCompact
}
