package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// ErrUnknownPreset is returned by ParsePreset for names it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset names a range selection.
type Preset string

const (
	PresetFit            Preset = "fit"
	PresetThisMonth      Preset = "this-month"
	PresetSixMonths      Preset = "6-months"
	PresetYearToDate     Preset = "year-to-date"
	PresetNextYearToDate Preset = "next-year-to-date"
	PresetFiveYears      Preset = "5-years"
)

// Presets lists every preset in menu order.
var Presets = []Preset{
	PresetFit,
	PresetThisMonth,
	PresetSixMonths,
	PresetYearToDate,
	PresetNextYearToDate,
	PresetFiveYears,
}

var presetLabels = map[Preset]string{
	PresetFit:            "Fit",
	PresetThisMonth:      "This month",
	PresetSixMonths:      "6 months",
	PresetYearToDate:     "Year to date",
	PresetNextYearToDate: "Through next year",
	PresetFiveYears:      "5 years",
}

// Label is the human name of the preset.
func (p Preset) Label() string {
	if l, ok := presetLabels[p]; ok {
		return l
	}
	return presetLabels[PresetFit]
}

// ParsePreset resolves a preset name case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presetLabels[p]; !ok {
		return PresetFit, fmt.Errorf("%w %q", ErrUnknownPreset, s)
	}
	return p, nil
}

// Next returns the preset after p, wrapping around.
func (p Preset) Next() Preset {
	for i, q := range Presets {
		if q == p {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return PresetFit
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start goal.Date `json:"start"`
	End   goal.Date `json:"end"`
}

// Days returns the number of calendar days covered, at least 1.
func (r Range) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d goal.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// DefaultRange is the current month through five months ahead.
func DefaultRange(today goal.Date) Range {
	return Range{Start: today.StartOfMonth(), End: today.AddMonths(5).EndOfMonth()}
}

// Resolve computes the range a preset selects. An unknown preset behaves as
// fit, and a range whose end precedes its start collapses to a single day.
func Resolve(p Preset, goals []goal.Goal, today goal.Date) Range {
	var r Range
	switch p {
	case PresetThisMonth:
		r = Range{Start: today.StartOfMonth(), End: today.EndOfMonth()}
	case PresetSixMonths:
		r = DefaultRange(today)
	case PresetYearToDate:
		r = Range{Start: goal.NewDate(today.Year(), 1, 1), End: today}
	case PresetNextYearToDate:
		r = Range{Start: today, End: goal.NewDate(today.Year()+1, 12, 31)}
	case PresetFiveYears:
		r = Range{Start: today.StartOfMonth(), End: today.AddMonths(59).EndOfMonth()}
	default:
		r = fitRange(goals, today)
	}
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	return r
}

func fitRange(goals []goal.Goal, today goal.Date) Range {
	var lo, hi goal.Date
	for _, g := range goals {
		lo = goal.MinDate(lo, g.StartDate)
		hi = goal.MaxDate(hi, g.EndDate)
	}
	if lo.IsZero() && hi.IsZero() {
		return DefaultRange(today)
	}
	if lo.IsZero() {
		lo = hi
	}
	if hi.IsZero() {
		hi = lo
	}
	return Range{Start: lo.StartOfMonth(), End: hi.EndOfMonth()}
}
