package workspace

import (
	"planboard/internal/model"
	"planboard/internal/service"
)

func (a *App) Statuses(slug string) ([]*model.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.store.GetProjectBySlug(slug)
	if err != nil {
		return nil, err
	}
	var out []*model.Status
	for _, s := range a.store.GetStatusesByProject(p.ID) {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (a *App) CreateStatus(slug, name, color string, category model.StatusCategory) (*model.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	s, err := a.svc.CreateStatus(p.ID, name, color, category)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Status " + s.Name + " created")
	a.refresh(p.ID)
	cp := *s
	return &cp, nil
}

func (a *App) UpdateStatus(id string, patch service.StatusPatch) (*model.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.svc.UpdateStatus(id, patch)
	if err != nil {
		return nil, a.fail(err)
	}
	a.refresh(s.ProjectID)
	cp := *s
	return &cp, nil
}

// DeleteStatus removes a status. Tasks still using it move to the returned
// fallback status, which requires confirmed.
func (a *App) DeleteStatus(id string, confirmed bool) (*model.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var projectID string
	if st, err := a.store.GetStatusByID(id); err == nil {
		projectID = st.ProjectID
	}
	fallback, err := a.svc.DeleteStatus(id, confirmed)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Status deleted")
	a.refresh(projectID)
	if fallback == nil {
		return nil, nil
	}
	cp := *fallback
	return &cp, nil
}

func (a *App) ReorderStatuses(slug string, ids []string) ([]*model.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	ordered, err := a.svc.ReorderStatuses(p.ID, ids)
	if err != nil {
		return nil, a.fail(err)
	}
	a.refresh(p.ID)
	out := make([]*model.Status, 0, len(ordered))
	for _, s := range ordered {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (a *App) CreateLabel(slug, name, color string) (*model.Label, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	l, err := a.svc.CreateLabel(p.ID, name, color)
	if err != nil {
		return nil, a.fail(err)
	}
	a.refresh(p.ID)
	cp := *l
	return &cp, nil
}

func (a *App) DeleteLabel(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var projectID string
	if l, err := a.store.GetLabelByID(id); err == nil {
		projectID = l.ProjectID
	}
	if err := a.svc.DeleteLabel(id); err != nil {
		return a.fail(err)
	}
	a.succeed("Label deleted")
	a.refresh(projectID)
	return nil
}
