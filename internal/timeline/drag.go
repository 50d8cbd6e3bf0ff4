package timeline

import (
	"errors"
	"fmt"

	"planboard/internal/model"
	"planboard/internal/repository"
)

// MinWidth is the narrowest a bar may be resized to, in percent of the track.
const MinWidth = 2.0

var (
	ErrNotDragging     = errors.New("no bar interaction in progress")
	ErrAlreadyDragging = errors.New("a bar interaction is already in progress")
	ErrNoBar           = errors.New("task has no bar on this window")
	ErrTrackWidth      = errors.New("track width must be positive")
)

// Mode is the part of the bar a gesture started on.
type Mode int

const (
	ModeMove Mode = iota
	ModeResizeLeft
	ModeResizeRight
)

func (m Mode) String() string {
	switch m {
	case ModeResizeLeft:
		return "resize-left"
	case ModeResizeRight:
		return "resize-right"
	}
	return "move"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "move":
		return ModeMove, nil
	case "resize-left":
		return ModeResizeLeft, nil
	case "resize-right":
		return ModeResizeRight, nil
	}
	return 0, fmt.Errorf("unknown bar drag mode %q", s)
}

// State is Idle or Dragging.
type State interface {
	isState()
}

type Idle struct{}

// Dragging holds the geometry captured at pointer-down and the live geometry.
type Dragging struct {
	Mode       Mode
	TaskID     string
	Window     *Window
	StartX     float64
	TrackWidth float64
	Orig       Bar
	Current    Bar
}

func (Idle) isState()     {}
func (Dragging) isState() {}

// Result describes a committed bar gesture.
type Result struct {
	TaskID    string     `json:"task_id"`
	StartDate model.Date `json:"start_date"`
	DueDate   model.Date `json:"due_date"`
	Changed   bool       `json:"changed"`
}

func (r Result) Message() string {
	return fmt.Sprintf("Dates updated: %s to %s", r.StartDate.Format("Jan 2"), r.DueDate.Format("Jan 2, 2006"))
}

// Engine runs the bar drag/resize interaction on the roadmap.
type Engine struct {
	store *repository.Store
	state State
}

func NewEngine(store *repository.Store) *Engine {
	return &Engine{store: store, state: Idle{}}
}

func (e *Engine) State() State {
	return e.state
}

// Begin starts a gesture on the task's bar at pointer position x over a
// track trackWidth pixels wide.
func (e *Engine) Begin(taskID string, mode Mode, w *Window, x, trackWidth float64) error {
	if _, ok := e.state.(Dragging); ok {
		return ErrAlreadyDragging
	}
	if trackWidth <= 0 {
		return ErrTrackWidth
	}
	task, err := e.store.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	bar, ok := w.BarFor(task)
	if !ok {
		return ErrNoBar
	}
	e.state = Dragging{
		Mode:       mode,
		TaskID:     task.ID,
		Window:     w,
		StartX:     x,
		TrackWidth: trackWidth,
		Orig:       bar,
		Current:    bar,
	}
	return nil
}

// Drag applies the pointer position to the live geometry and returns it.
func (e *Engine) Drag(x float64) (Bar, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return Bar{}, ErrNotDragging
	}
	delta := (x - d.StartX) / d.TrackWidth * 100
	d.Current = apply(d.Mode, d.Orig, d.Current, delta)
	e.state = d
	return d.Current, nil
}

func apply(mode Mode, orig, current Bar, delta float64) Bar {
	if delta == 0 {
		return orig
	}
	next := orig
	switch mode {
	case ModeMove:
		next.Left = clamp(orig.Left+delta, 0, 100-orig.Width)
	case ModeResizeLeft:
		right := orig.Right()
		left := orig.Left + delta
		if left < 0 {
			left = 0
		}
		if right-left < MinWidth {
			return current
		}
		next.Left = left
		next.Width = right - left
	case ModeResizeRight:
		next.Width = clamp(orig.Width+delta, MinWidth, 100-orig.Left)
	}
	return next
}

// Cancel abandons the gesture. It reports whether one was active.
func (e *Engine) Cancel() bool {
	_, ok := e.state.(Dragging)
	e.state = Idle{}
	return ok
}

// Release commits the live geometry as the task's start and due dates. A
// gesture that never moved the bar writes nothing.
func (e *Engine) Release() (Result, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return Result{}, ErrNotDragging
	}
	e.state = Idle{}

	task, err := e.store.GetTaskByID(d.TaskID)
	if err != nil {
		return Result{}, err
	}
	start, due := d.Window.Dates(d.Current.Left, d.Current.Width)
	res := Result{TaskID: task.ID, StartDate: start, DueDate: due}
	if d.Current == d.Orig {
		return res, nil
	}
	if !sameDate(task.StartDate, start) || !sameDate(task.DueDate, due) {
		task.StartDate = model.DatePtr(start)
		task.DueDate = model.DatePtr(due)
		e.store.TouchTask(task)
		res.Changed = true
	}
	return res, nil
}

func sameDate(a *model.Date, b model.Date) bool {
	return a != nil && a.Equal(b)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
