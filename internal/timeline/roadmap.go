package timeline

import (
	"planboard/internal/model"
)

// Row is one task line of the roadmap. Bar is nil when the task has no
// placement on the current window.
type Row struct {
	TaskID    string      `json:"task_id"`
	Key       string      `json:"key"`
	Title     string      `json:"title"`
	StatusID  string      `json:"status_id"`
	StartDate *model.Date `json:"start_date,omitempty"`
	DueDate   *model.Date `json:"due_date,omitempty"`
	Bar       *Bar        `json:"bar,omitempty"`
}

type Roadmap struct {
	Window  *Window `json:"window"`
	Rows    []Row   `json:"rows"`
	Undated int     `json:"undated"`
}

// Project lays out already filtered and ordered tasks on the window.
func Project(w *Window, identifier string, tasks []*model.Task) *Roadmap {
	rm := &Roadmap{Window: w, Rows: make([]Row, 0, len(tasks))}
	for _, t := range tasks {
		row := Row{
			TaskID:    t.ID,
			Key:       t.Key(identifier),
			Title:     t.Title,
			StatusID:  t.StatusID,
			StartDate: copyDate(t.StartDate),
			DueDate:   copyDate(t.DueDate),
		}
		if t.StartDate == nil && t.DueDate == nil {
			rm.Undated++
		}
		if bar, ok := w.BarFor(t); ok {
			row.Bar = &bar
		}
		rm.Rows = append(rm.Rows, row)
	}
	return rm
}

func copyDate(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	return model.DatePtr(*d)
}
