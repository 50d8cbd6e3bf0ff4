package workspace

import (
	"planboard/internal/model"
	"planboard/internal/render"
	"planboard/internal/service"
)

func (a *App) Projects() []*model.Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*model.Project
	for _, p := range a.store.ListProjects() {
		out = append(out, copyProject(p))
	}
	return out
}

func (a *App) Project(slug string) (*model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.store.GetProjectBySlug(slug)
	if err != nil {
		return nil, err
	}
	return copyProject(p), nil
}

func (a *App) CreateProject(in service.ProjectInput) (*model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.svc.CreateProject(in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Project " + p.Name + " created")
	return copyProject(p), nil
}

// UpdateProject applies the settings. When the slug of the open project
// changes, the returned route is where the client has to go.
func (a *App) UpdateProject(slug string, patch service.ProjectPatch) (*model.Project, *render.Route, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	p, slugChanged, err := a.svc.UpdateProjectSettings(p.ID, patch)
	if err != nil {
		return nil, nil, a.fail(err)
	}
	if slugChanged {
		a.ctrl.ProjectRenamed(p)
	}
	a.succeed("Project settings saved")
	a.refresh(p.ID)
	return copyProject(p), a.takeRedirect(), nil
}

func (a *App) ToggleProjectArchive(slug string) (*model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p, err = a.svc.ToggleProjectArchive(p.ID); err != nil {
		return nil, a.fail(err)
	}
	if p.IsArchived {
		a.succeed("Project archived")
	} else {
		a.succeed("Project restored")
	}
	a.refresh(p.ID)
	return copyProject(p), nil
}

func (a *App) ToggleProjectFavorite(slug string) (*model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p, err = a.svc.ToggleProjectFavorite(p.ID); err != nil {
		return nil, a.fail(err)
	}
	a.refresh(p.ID)
	return copyProject(p), nil
}

// DeleteProject removes the project once confirmation matches its name.
func (a *App) DeleteProject(slug, confirmation string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return err
	}
	if err := a.svc.DeleteProject(p.ID, confirmation); err != nil {
		return a.fail(err)
	}
	a.ctrl.ProjectDeleted(p.ID)
	a.succeed("Project " + p.Name + " deleted")
	return nil
}
