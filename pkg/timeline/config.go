package timeline

import (
	"fmt"
	"strings"
)

// Density selects the per-row height band.
type Density string

const (
	DensityComfortable Density = "comfortable"
	DensityBalanced    Density = "balanced"
	DensityCompact     Density = "compact"
)

// Densities lists the densities from roomiest to tightest.
var Densities = []Density{DensityComfortable, DensityBalanced, DensityCompact}

// Next returns the density after d, wrapping around.
func (d Density) Next() Density {
	for i, x := range Densities {
		if x == d {
			return Densities[(i+1)%len(Densities)]
		}
	}
	return DensityBalanced
}

// Band is an inclusive [Min, Max] row height in pixels.
type Band struct {
	Min float64
	Max float64
}

var densityBands = map[Density]Band{
	DensityComfortable: {Min: 44, Max: 64},
	DensityBalanced:    {Min: 32, Max: 48},
	DensityCompact:     {Min: 22, Max: 34},
}

// Band returns the row height band of d; unknown densities are balanced.
func (d Density) Band() Band {
	if b, ok := densityBands[d]; ok {
		return b
	}
	return densityBands[DensityBalanced]
}

// ParseDensity resolves a density name.
func ParseDensity(s string) (Density, error) {
	d := Density(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := densityBands[d]; !ok {
		return DensityBalanced, fmt.Errorf("unknown density %q", s)
	}
	return d, nil
}

// Mode selects row assignment.
type Mode string

const (
	// ModeLanes gives each category one row; bars in a lane may overlap.
	ModeLanes Mode = "lanes"
	// ModeFlat gives each goal its own row in start-date order.
	ModeFlat Mode = "flat"
)

// Toggle switches between lanes and flat.
func (m Mode) Toggle() Mode {
	if m == ModeFlat {
		return ModeLanes
	}
	return ModeFlat
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLanes, ModeFlat:
		return m, nil
	}
	return ModeLanes, fmt.Errorf("unknown mode %q", s)
}

const (
	DefaultWidthPx        = 960
	DefaultTargetHeightPx = 420
)

// Config is the layout configuration: available width, target total height
// of the rows, density and row mode.
type Config struct {
	WidthPx        float64
	TargetHeightPx float64
	Density        Density
	Mode           Mode
}

func (c Config) withDefaults() Config {
	if c.WidthPx <= 0 {
		c.WidthPx = DefaultWidthPx
	}
	if c.TargetHeightPx <= 0 {
		c.TargetHeightPx = DefaultTargetHeightPx
	}
	if _, ok := densityBands[c.Density]; !ok {
		c.Density = DensityBalanced
	}
	if c.Mode != ModeFlat {
		c.Mode = ModeLanes
	}
	return c
}

// RowHeight divides the target height across rows, clamped to the density
// band.
func RowHeight(targetPx float64, rows int, d Density) float64 {
	b := d.Band()
	if rows < 1 {
		rows = 1
	}
	return clamp(targetPx/float64(rows), b.Min, b.Max)
}
