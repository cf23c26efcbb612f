package timeline

import (
	"fmt"
	"time"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// Gridline is a vertical month boundary.
type Gridline struct {
	Date  goal.Date `json:"date"`
	Pct   float64   `json:"pct"`
	Label string    `json:"label"`
}

// QuarterBand is a calendar quarter clipped to the range.
type QuarterBand struct {
	Start    goal.Date `json:"start"`
	End      goal.Date `json:"end"`
	LeftPct  float64   `json:"leftPct"`
	RightPct float64   `json:"rightPct"`
	Label    string    `json:"label"`
}

// MonthGridlines returns the first day of every month after r.Start up to
// and including r.End. January lines carry the year.
func MonthGridlines(r Range, s Scale) []Gridline {
	var lines []Gridline
	for d := r.Start.AddMonths(1); !d.After(r.End); d = d.AddMonths(1) {
		label := d.Format("Jan")
		if d.Month() == 1 {
			label = d.Format("Jan 2006")
		}
		lines = append(lines, Gridline{Date: d, Pct: s.Pct(d), Label: label})
	}
	return lines
}

// Quarters returns every calendar quarter that intersects r, clipped to it.
// End is the last day in the band; RightPct is where the next band starts,
// so adjacent bands meet.
func Quarters(r Range, s Scale) []QuarterBand {
	var bands []QuarterBand
	q := quarterStart(r.Start)
	for !q.After(r.End) {
		next := q.AddMonths(3)
		start := goal.MaxDate(q, r.Start)
		end := goal.MinDate(next.AddDays(-1), r.End)
		bands = append(bands, QuarterBand{
			Start:    start,
			End:      end,
			LeftPct:  s.Pct(start),
			RightPct: s.Pct(goal.MinDate(next, r.End)),
			Label:    fmt.Sprintf("Q%d %d", (int(q.Month())-1)/3+1, q.Year()),
		})
		q = next
	}
	return bands
}

func quarterStart(d goal.Date) goal.Date {
	m := (int(d.Month())-1)/3*3 + 1
	return goal.NewDate(d.Year(), time.Month(m), 1)
}
