// Package workspace holds the application state: the entity store, the view
// state and the render controller. Every operation runs under one mutex, so
// the engines see a single-threaded event loop even when requests arrive
// concurrently.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"planboard/internal/loader"
	"planboard/internal/model"
	"planboard/internal/notify"
	"planboard/internal/projection"
	"planboard/internal/render"
	"planboard/internal/repository"
	"planboard/internal/service"
	"planboard/internal/viewstate"
)

type Options struct {
	PageSize        int
	PriorityMode    projection.PriorityMode
	NotificationTTL time.Duration
	Renderer        render.Renderer
	Today           func() model.Date
	StoreOptions    []repository.Option
}

type App struct {
	mu       sync.Mutex
	store    *repository.Store
	svc      *service.Service
	ctrl     *render.Controller
	notes    *notify.CacheNotifier
	redirect *render.Route
}

func New(c *loader.Collections, opts Options) *App {
	if opts.PriorityMode == "" {
		opts.PriorityMode = projection.PriorityFixed
	}
	if opts.Renderer == nil {
		opts.Renderer = render.LogRenderer{}
	}
	store := repository.NewStore(c, opts.StoreOptions...)
	a := &App{
		store: store,
		svc:   service.New(store),
		notes: notify.NewCacheNotifier(opts.NotificationTTL),
	}
	ctrlOpts := []render.Option{
		render.WithNotifier(a.notes),
		render.WithNavigator(a),
		render.WithRenderer(opts.Renderer),
		render.WithComputer(projection.NewComputer(opts.PriorityMode)),
	}
	if opts.Today != nil {
		ctrlOpts = append(ctrlOpts, render.WithToday(opts.Today))
	}
	a.ctrl = render.NewController(a.svc, viewstate.NewRegistry(opts.PageSize), ctrlOpts...)
	return a
}

// Load builds the workspace from the loader's collections. Collections that
// fail to load start empty.
func Load(ctx context.Context, l loader.Loader, opts Options) *App {
	c := loader.LoadCollections(ctx, l)
	logrus.WithFields(logrus.Fields{
		"projects": len(c.Projects),
		"tasks":    len(c.Tasks),
		"users":    len(c.Users),
	}).Info("workspace loaded")
	return New(c, opts)
}

// Navigate records the route the client should move to. It is called by the
// controller while the lock is held.
func (a *App) Navigate(r render.Route) {
	a.redirect = &r
}

func (a *App) takeRedirect() *render.Route {
	r := a.redirect
	a.redirect = nil
	return r
}

// Open renders a project tab and makes it the current route.
func (a *App) Open(ctx context.Context, slug string, tab viewstate.Tab) (*render.Frame, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Open(ctx, render.Route{ProjectSlug: slug, Tab: tab})
}

// Dispatch delivers a client event to the current render.
func (a *App) Dispatch(ctx context.Context, generation uint64, listenerID string, ev render.Event) (*render.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Dispatch(ctx, generation, listenerID, ev)
}

// Route is the route of the last render.
func (a *App) Route() render.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Route()
}

func (a *App) Workspace() model.Workspace {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Workspace()
}

func (a *App) Notifications() []notify.Notification {
	return a.notes.Recent()
}

func (a *App) DismissNotification(id string) bool {
	return a.notes.Dismiss(id)
}

// fail reports err to the user and hands it back.
func (a *App) fail(err error) error {
	a.notes.Notify(render.Message(err), notify.Error)
	return err
}

func (a *App) succeed(message string) {
	a.notes.Notify(message, notify.Success)
}

// refresh re-renders the open route when projectID is the project on screen.
func (a *App) refresh(projectID string) {
	a.ctrl.Refresh(context.Background(), projectID)
}

func (a *App) projectBySlug(slug string) (*model.Project, error) {
	p, err := a.store.GetProjectBySlug(slug)
	if err != nil {
		return nil, a.fail(err)
	}
	return p, nil
}

func copyProject(p *model.Project) *model.Project {
	cp := *p
	cp.MemberIDs = append([]string{}, p.MemberIDs...)
	if p.LeadID != nil {
		cp.LeadID = model.StringPtr(*p.LeadID)
	}
	return &cp
}
