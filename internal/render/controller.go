// Package render coordinates state changes, projection and listener binding.
// Every render revokes the previous generation of listeners wholesale before
// binding a fresh batch, so no handler outlives the frame it was bound for.
package render

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"planboard/internal/dnd"
	"planboard/internal/model"
	"planboard/internal/notify"
	"planboard/internal/projection"
	"planboard/internal/repository"
	"planboard/internal/service"
	"planboard/internal/timeline"
	"planboard/internal/viewstate"
)

var ErrNoRoute = errors.New("no project is open")

type Controller struct {
	svc       *service.Service
	store     *repository.Store
	views     *viewstate.Registry
	computer  *projection.Computer
	drag      *dnd.Engine
	gantt     *timeline.Engine
	notifier  notify.Notifier
	renderer  Renderer
	navigator Navigator
	today     func() model.Date

	scope    *Scope
	overlays *Overlays
	route    Route
	project  string
}

type Option func(*Controller)

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithComputer(p *projection.Computer) Option {
	return func(c *Controller) { c.computer = p }
}

// WithToday overrides the calendar day used for overdue checks and the roadmap.
func WithToday(today func() model.Date) Option {
	return func(c *Controller) { c.today = today }
}

func NewController(svc *service.Service, views *viewstate.Registry, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		store:     svc.Store(),
		views:     views,
		computer:  projection.NewComputer(projection.PriorityFixed),
		drag:      dnd.NewEngine(svc.Store()),
		gantt:     timeline.NewEngine(svc.Store()),
		notifier:  notify.Discard,
		renderer:  NopRenderer{},
		navigator: nopNavigator{},
		today:     func() model.Date { return model.DateOf(time.Now()) },
		scope:     NewScope(),
		overlays:  NewOverlays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Route() Route {
	return c.route
}

// ListenerCount is the number of live view-level listeners.
func (c *Controller) ListenerCount() int {
	return c.scope.Len()
}

func (c *Controller) Overlays() *Overlays {
	return c.overlays
}

// Open renders the route. An unknown tab falls back to the project's default
// view, then to the list.
func (c *Controller) Open(ctx context.Context, r Route) (*Frame, error) {
	p, err := c.store.GetProjectBySlug(r.ProjectSlug)
	if err != nil {
		return nil, err
	}
	r.Tab = resolveTab(r.Tab, p)
	c.route, c.project = r, p.ID
	return c.Render(ctx)
}

// ProjectRenamed follows a slug change of the open project.
func (c *Controller) ProjectRenamed(p *model.Project) {
	if c.project != p.ID || c.route.ProjectSlug == p.Slug {
		return
	}
	c.route.ProjectSlug = p.Slug
	c.navigator.Navigate(c.route)
}

// ProjectDeleted closes the route when the open project goes away.
func (c *Controller) ProjectDeleted(projectID string) {
	c.views.Reset(projectID)
	if c.project != projectID {
		return
	}
	c.overlays.DismissAll()
	c.scope.Invalidate()
	c.drag.Cancel()
	c.gantt.Cancel()
	c.route, c.project = Route{}, ""
}

// Refresh renders the open route again after projectID changed outside an
// event, so listeners bound against the old data are revoked.
func (c *Controller) Refresh(ctx context.Context, projectID string) {
	if c.project == "" || c.project != projectID {
		return
	}
	if _, err := c.Render(ctx); err != nil {
		logrus.WithError(err).WithField("route", c.route).Warn("refresh after mutation failed")
	}
}

// Render rebuilds the current route: overlays are dismissed one by one, the
// listener scope is revoked, the projection is recomputed and a fresh batch
// of listeners is bound.
func (c *Controller) Render(ctx context.Context) (*Frame, error) {
	c.overlays.DismissAll()
	c.scope.Invalidate()
	if c.project == "" {
		return nil, ErrNoRoute
	}
	p, err := c.store.GetProjectByID(c.project)
	if err != nil {
		return nil, err
	}
	c.route.ProjectSlug = p.Slug
	st := c.views.For(p.ID)
	ds := c.dataset(p)

	f := &Frame{
		Route:    c.route,
		Project:  *p,
		Progress: projection.Progress(ds.Tasks, ds.Statuses),
	}
	f.Project.MemberIDs = append([]string{}, p.MemberIDs...)

	c.bindCommon(p)
	switch c.route.Tab {
	case viewstate.TabBoard:
		f.Board = c.computer.Board(ds, st)
		c.bindFilters(st)
		c.bindBoard(p, st, f.Board)
	case viewstate.TabRoadmap:
		if f.Roadmap, err = c.roadmap(p, ds, st); err != nil {
			return nil, err
		}
		c.bindFilters(st)
		c.bindRoadmap(st, f.Roadmap)
	case viewstate.TabInsights:
		f.Insights = c.computer.Insights(ds)
	case viewstate.TabFiles:
		f.Files = projection.Files(c.store.GetFilesByProject(p.ID), ds.Users, st.Page(viewstate.TableFiles), c.views.FileSelected)
		c.bindFiles(p, st, f.Files)
	case viewstate.TabMembers:
		f.Members = projection.Members(p, c.store.GetProjectMembers(p), ds.Tasks, st.Page(viewstate.TableMembers), c.views.MemberSelected)
		c.bindMembers(p, st, f.Members)
	default:
		f.List = c.computer.List(ds, st)
		c.bindFilters(st)
		c.bindList(p, st, ds, f.List)
	}

	f.Generation = c.scope.Generation()
	f.State = st.Snapshot()
	f.Listeners = c.scope.Bindings()
	f.Transient = c.transient()
	if err := c.renderer.Render(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Dispatch delivers an event to a listener of the given generation, or to an
// open overlay, and renders again unless the listener is quiet. Handler
// failures are reported through the notifier, not returned.
func (c *Controller) Dispatch(ctx context.Context, generation uint64, listenerID string, ev Event) (*Response, error) {
	if c.overlays.Owns(listenerID) {
		changed, err := c.overlays.Dispatch(ctx, listenerID, ev)
		if err != nil {
			c.fail(err)
		}
		if !changed {
			return &Response{Transient: c.transient()}, nil
		}
		return c.rerender(ctx)
	}

	b, err := c.scope.Dispatch(ctx, generation, listenerID, ev)
	if errors.Is(err, ErrStaleGeneration) || errors.Is(err, ErrUnknownListener) {
		return nil, err
	}
	if err != nil {
		c.fail(err)
	}
	if b.Quiet {
		return &Response{Transient: c.transient()}, nil
	}
	return c.rerender(ctx)
}

func (c *Controller) rerender(ctx context.Context) (*Response, error) {
	f, err := c.Render(ctx)
	if err != nil {
		return nil, err
	}
	return &Response{Rendered: true, Frame: f, Transient: f.Transient}, nil
}

func (c *Controller) fail(err error) {
	logrus.WithError(err).WithField("route", c.route).Debug("event handler failed")
	c.notifier.Notify(Message(err), notify.Error)
}

func (c *Controller) transient() Transient {
	t := Transient{Overlays: c.overlays.List()}
	if d, ok := c.drag.State().(dnd.Dragging); ok {
		t.Drag = &DragView{TaskID: d.TaskID, Indicator: d.Indicator}
	}
	if g, ok := c.gantt.State().(timeline.Dragging); ok {
		t.Gantt = &GanttView{TaskID: g.TaskID, Mode: g.Mode.String(), Bar: g.Current}
	}
	return t
}

func (c *Controller) dataset(p *model.Project) *projection.Dataset {
	ds := &projection.Dataset{
		Project:    p,
		Tasks:      c.store.GetTasksByProject(p.ID),
		Statuses:   c.store.GetStatusesByProject(p.ID),
		Priorities: c.store.ListPriorities(),
		Labels:     c.store.GetLabelsByProject(p.ID),
		Users:      c.store.ListUsers(),
		Today:      c.today(),
	}
	if u := c.store.CurrentUser(); u != nil {
		ds.CurrentUserID = u.ID
	}
	return ds
}

func (c *Controller) roadmap(p *model.Project, ds *projection.Dataset, st *viewstate.ProjectState) (*timeline.Roadmap, error) {
	w, err := timeline.Generate(st.Roadmap.Scale, ds.Today, st.Roadmap.Offset)
	if err != nil {
		return nil, err
	}
	tasks := projection.ByManualOrder(projection.Filter(ds, st))
	return timeline.Project(w, p.Identifier, tasks), nil
}

func resolveTab(tab viewstate.Tab, p *model.Project) viewstate.Tab {
	if t, err := viewstate.ParseTab(string(tab)); err == nil {
		return t
	}
	if t, err := viewstate.ParseTab(p.DefaultView); err == nil {
		return t
	}
	return viewstate.TabList
}

// Message is the user-facing text for an error.
func Message(err error) string {
	switch {
	case errors.Is(err, service.ErrLastStatus):
		return "A project needs at least one status"
	case errors.Is(err, service.ErrConfirmationMismatch):
		return "Type the project name to confirm deletion"
	case errors.Is(err, service.ErrStatusInUse):
		return "This status is in use; confirm to move its tasks"
	}
	return err.Error()
}
