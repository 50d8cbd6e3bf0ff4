// Package timeline builds roadmap windows for the four timeline scales, lays
// task bars out on them and runs the bar drag/resize interaction.
package timeline

import (
	"fmt"
	"time"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

// Span is a labelled half-open range of days [Start, End).
type Span struct {
	Label string     `json:"label"`
	Start model.Date `json:"start"`
	End   model.Date `json:"end"`
}

// Days is the length of the span.
func (s Span) Days() int {
	return s.Start.DaysUntil(s.End)
}

// Unit is one header cell of the roadmap with its finer subdivisions.
type Unit struct {
	Span
	Subdivisions []Span `json:"subdivisions"`
}

// Window is the date range a roadmap shows. End is exclusive and TotalDays
// always equals End - Start; bar geometry depends on nothing else.
type Window struct {
	Scale     viewstate.Scale `json:"scale"`
	Offset    int             `json:"offset"`
	Label     string          `json:"label"`
	Start     model.Date      `json:"start"`
	End       model.Date      `json:"end"`
	TotalDays int             `json:"total_days"`
	Units     []Unit          `json:"units"`
	// TodayPct positions the today marker; nil when today is outside the window.
	TodayPct *float64 `json:"today_pct,omitempty"`
}

// Generate returns the window for scale anchored at today shifted by offset
// scale-sized steps.
func Generate(scale viewstate.Scale, today model.Date, offset int) (*Window, error) {
	var w *Window
	switch scale {
	case viewstate.ScaleWeek:
		w = weekWindow(today, offset)
	case viewstate.ScaleMonth:
		w = monthWindow(today, offset)
	case viewstate.ScaleQuarter:
		w = quarterWindow(today, offset)
	case viewstate.ScaleYear:
		w = yearWindow(today, offset)
	default:
		return nil, fmt.Errorf("unknown timeline scale %q", scale)
	}
	w.Scale = scale
	w.Offset = offset
	w.TotalDays = w.Start.DaysUntil(w.End)
	if !today.Before(w.Start) && today.Before(w.End) {
		pct := w.Percent(today)
		w.TodayPct = &pct
	}
	return w, nil
}

// Percent maps a day onto the window track, 0 at Start and 100 at End.
func (w *Window) Percent(d model.Date) float64 {
	if w.TotalDays == 0 {
		return 0
	}
	return float64(w.Start.DaysUntil(d)) / float64(w.TotalDays) * 100
}

// DateAt is the inverse of Percent, rounded to the nearest whole day.
func (w *Window) DateAt(pct float64) model.Date {
	return w.Start.AddDays(roundDays(pct / 100 * float64(w.TotalDays)))
}

func weekWindow(today model.Date, offset int) *Window {
	start := mondayOf(today).AddDays(7 * offset)
	end := start.AddDays(7)
	unit := Unit{Span: Span{
		Label: fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.AddDays(-1).Format("Jan 2, 2006")),
		Start: start,
		End:   end,
	}}
	for d := start; d.Before(end); d = d.AddDays(1) {
		unit.Subdivisions = append(unit.Subdivisions, Span{Label: d.Format("Mon 2"), Start: d, End: d.AddDays(1)})
	}
	return &Window{Label: unit.Label, Start: start, End: end, Units: []Unit{unit}}
}

func monthWindow(today model.Date, offset int) *Window {
	start := addMonths(firstOfMonth(today), offset)
	end := addMonths(start, 1)
	unit := monthUnit(start)
	return &Window{Label: start.Format("January 2006"), Start: start, End: end, Units: []Unit{unit}}
}

func quarterWindow(today model.Date, offset int) *Window {
	first := firstOfMonth(today)
	first = addMonths(first, -((int(first.Month()) - 1) % 3))
	start := addMonths(first, 3*offset)
	end := addMonths(start, 3)
	w := &Window{Label: quarterLabel(start), Start: start, End: end}
	for m := start; m.Before(end); m = addMonths(m, 1) {
		w.Units = append(w.Units, monthUnit(m))
	}
	return w
}

func yearWindow(today model.Date, offset int) *Window {
	start := model.NewDate(today.Year()+offset, time.January, 1)
	end := model.NewDate(today.Year()+offset+1, time.January, 1)
	w := &Window{Label: start.Format("2006"), Start: start, End: end}
	for q := start; q.Before(end); q = addMonths(q, 3) {
		unit := Unit{Span: Span{Label: quarterLabel(q), Start: q, End: addMonths(q, 3)}}
		for m := q; m.Before(unit.End); m = addMonths(m, 1) {
			unit.Subdivisions = append(unit.Subdivisions, Span{Label: m.Format("Jan"), Start: m, End: addMonths(m, 1)})
		}
		w.Units = append(w.Units, unit)
	}
	return w
}

// monthUnit splits a calendar month into weeks starting on Monday; the first
// and last weeks are cut at the month boundaries.
func monthUnit(start model.Date) Unit {
	end := addMonths(start, 1)
	unit := Unit{Span: Span{Label: start.Format("January 2006"), Start: start, End: end}}
	for d := start; d.Before(end); {
		next := mondayOf(d).AddDays(7)
		if next.After(end) {
			next = end
		}
		unit.Subdivisions = append(unit.Subdivisions, Span{Label: d.Format("Jan 2"), Start: d, End: next})
		d = next
	}
	return unit
}

func quarterLabel(d model.Date) string {
	return fmt.Sprintf("Q%d %d", (int(d.Month())-1)/3+1, d.Year())
}

func mondayOf(d model.Date) model.Date {
	return d.AddDays(-((int(d.Weekday()) + 6) % 7))
}

func firstOfMonth(d model.Date) model.Date {
	return model.NewDate(d.Year(), d.Month(), 1)
}

func addMonths(d model.Date, n int) model.Date {
	return model.NewDate(d.Year(), d.Month()+time.Month(n), d.Day())
}
