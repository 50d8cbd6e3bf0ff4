package render

import (
	"context"

	"github.com/sirupsen/logrus"

	"planboard/internal/dnd"
	"planboard/internal/model"
	"planboard/internal/projection"
	"planboard/internal/timeline"
	"planboard/internal/viewstate"
)

// Route is the page the router asked for.
type Route struct {
	ProjectSlug string        `json:"project_slug"`
	Tab         viewstate.Tab `json:"tab"`
}

// Frame is everything one render produces: plain data for the templating
// layer plus the listeners bound for this generation. It shares no memory
// with the store.
type Frame struct {
	Generation uint64                  `json:"generation"`
	Route      Route                   `json:"route"`
	Project    model.Project           `json:"project"`
	State      *viewstate.ProjectState `json:"state"`
	Progress   int                     `json:"progress"`
	List       *projection.ListView    `json:"list,omitempty"`
	Board      *projection.BoardView   `json:"board,omitempty"`
	Roadmap    *timeline.Roadmap       `json:"roadmap,omitempty"`
	Insights   *projection.Insights    `json:"insights,omitempty"`
	Files      *projection.FilesView   `json:"files,omitempty"`
	Members    *projection.MembersView `json:"members,omitempty"`
	Listeners  []Binding               `json:"listeners"`
	Transient
}

// Transient is interaction feedback that changes without a render.
type Transient struct {
	Drag     *DragView  `json:"drag,omitempty"`
	Gantt    *GanttView `json:"gantt,omitempty"`
	Overlays []Overlay  `json:"overlays"`
}

type DragView struct {
	TaskID    string         `json:"task_id"`
	Indicator *dnd.Indicator `json:"indicator,omitempty"`
}

type GanttView struct {
	TaskID string       `json:"task_id"`
	Mode   string       `json:"mode"`
	Bar    timeline.Bar `json:"bar"`
}

// Response answers a dispatched event. Frame is set only when the event
// caused a render.
type Response struct {
	Rendered  bool      `json:"rendered"`
	Frame     *Frame    `json:"frame,omitempty"`
	Transient Transient `json:"transient"`
}

// Renderer turns a frame into markup.
type Renderer interface {
	Render(ctx context.Context, f *Frame) error
}

// Navigator is asked to move the client to another route.
type Navigator interface {
	Navigate(r Route)
}

type NopRenderer struct{}

func (NopRenderer) Render(context.Context, *Frame) error { return nil }

// LogRenderer only traces frames; the HTTP layer serializes them itself.
type LogRenderer struct{}

func (LogRenderer) Render(_ context.Context, f *Frame) error {
	logrus.WithFields(logrus.Fields{
		"project":    f.Route.ProjectSlug,
		"tab":        f.Route.Tab,
		"generation": f.Generation,
		"listeners":  len(f.Listeners),
	}).Debug("frame rendered")
	return nil
}

type nopNavigator struct{}

func (nopNavigator) Navigate(Route) {}
