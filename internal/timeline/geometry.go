package timeline

import (
	"math"

	"planboard/internal/model"
)

// MinVisualDays is how far the end of a bar is pushed when a task ends on or
// before the day it starts. The extension is display-only.
const MinVisualDays = 7

// Bar is a task's horizontal placement on a window, in percent of the track.
type Bar struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	// ClippedLeft and ClippedRight report that the task continues past the window edge.
	ClippedLeft  bool `json:"clipped_left"`
	ClippedRight bool `json:"clipped_right"`
}

// Right is the percentage where the bar ends.
func (b Bar) Right() float64 {
	return b.Left + b.Width
}

// DisplayRange returns the displayed date range of a task: missing dates default from
// the other bound and a non-positive duration is widened to MinVisualDays. ok
// is false for tasks without any date.
func DisplayRange(t *model.Task) (start, end model.Date, ok bool) {
	switch {
	case t.StartDate != nil && t.DueDate != nil:
		start, end = *t.StartDate, *t.DueDate
	case t.StartDate != nil:
		start, end = *t.StartDate, *t.StartDate
	case t.DueDate != nil:
		start, end = *t.DueDate, *t.DueDate
	default:
		return model.Date{}, model.Date{}, false
	}
	if !end.After(start) {
		end = start.AddDays(MinVisualDays)
	}
	return start, end, true
}

// BarFor lays a task out on the window. ok is false when the task is undated
// or lies entirely outside the window.
func (w *Window) BarFor(t *model.Task) (Bar, bool) {
	start, end, ok := DisplayRange(t)
	if !ok || w.TotalDays == 0 {
		return Bar{}, false
	}
	if !end.After(w.Start) || !start.Before(w.End) {
		return Bar{}, false
	}
	var bar Bar
	if start.Before(w.Start) {
		start = w.Start
		bar.ClippedLeft = true
	}
	if end.After(w.End) {
		end = w.End
		bar.ClippedRight = true
	}
	bar.Left = w.Percent(start)
	bar.Width = w.Percent(end) - bar.Left
	return bar, true
}

// Dates converts a bar position back to calendar dates on the window.
func (w *Window) Dates(left, width float64) (start, due model.Date) {
	return w.DateAt(left), w.DateAt(left + width)
}

func roundDays(days float64) int {
	return int(math.Round(days))
}
