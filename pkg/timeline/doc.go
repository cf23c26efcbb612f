// Package timeline computes Gantt geometry for a set of goals: the visible
// date range, percentage coordinates on the horizontal axis, row placement,
// label placement, milestone overlays, the today marker and gridlines.
//
// Everything here is a pure function of its inputs. The current day is
// passed in explicitly so layouts are reproducible.
package timeline
