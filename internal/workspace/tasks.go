package workspace

import (
	"planboard/internal/dnd"
	"planboard/internal/model"
	"planboard/internal/service"
)

func (a *App) Tasks(slug string) ([]*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.store.GetProjectBySlug(slug)
	if err != nil {
		return nil, err
	}
	var out []*model.Task
	for _, t := range a.store.GetTasksByProject(p.ID) {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (a *App) CreateTask(slug string, in service.TaskInput) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.projectBySlug(slug)
	if err != nil {
		return nil, err
	}
	t, err := a.svc.CreateTask(p.ID, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Created " + t.Key(p.Identifier))
	a.refresh(p.ID)
	return t.Clone(), nil
}

func (a *App) UpdateTask(id string, patch service.TaskPatch) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.svc.UpdateTask(id, patch)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Task updated")
	a.refresh(t.ProjectID)
	return t.Clone(), nil
}

// MoveTask reclassifies and repositions a task without a pointer gesture.
func (a *App) MoveTask(id string, target dnd.Target) (dnd.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res, err := a.svc.MoveTask(id, target)
	if err != nil {
		return res, a.fail(err)
	}
	if msg := res.Message(); msg != "" {
		a.succeed(msg)
	}
	if t, err := a.store.GetTaskByID(id); err == nil {
		a.refresh(t.ProjectID)
	}
	return res, nil
}

func (a *App) ArchiveTask(id string) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.svc.ArchiveTask(id)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Task archived")
	a.refresh(t.ProjectID)
	return t.Clone(), nil
}

func (a *App) RestoreTask(id string) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.svc.RestoreTask(id)
	if err != nil {
		return nil, a.fail(err)
	}
	a.succeed("Task restored")
	a.refresh(t.ProjectID)
	return t.Clone(), nil
}

func (a *App) AddLabelToTask(taskID, labelID string) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.svc.AddLabelToTask(taskID, labelID)
	if err != nil {
		return nil, a.fail(err)
	}
	a.refresh(t.ProjectID)
	return t.Clone(), nil
}

func (a *App) RemoveLabelFromTask(taskID, labelID string) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.svc.RemoveLabelFromTask(taskID, labelID)
	if err != nil {
		return nil, a.fail(err)
	}
	a.refresh(t.ProjectID)
	return t.Clone(), nil
}
