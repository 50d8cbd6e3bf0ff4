package render

import (
	"context"

	"planboard/internal/model"
	"planboard/internal/notify"
	"planboard/internal/projection"
	"planboard/internal/timeline"
	"planboard/internal/viewstate"
)

func (c *Controller) bindRoadmap(st *viewstate.ProjectState, rm *timeline.Roadmap) {
	c.scope.Bind(Click, "roadmap-prev", func(context.Context, Event) error {
		st.ShiftRoadmap(-1)
		return nil
	})
	c.scope.Bind(Click, "roadmap-next", func(context.Context, Event) error {
		st.ShiftRoadmap(1)
		return nil
	})
	c.scope.Bind(Click, "roadmap-today", func(context.Context, Event) error {
		st.RoadmapToday()
		return nil
	})
	c.scope.Bind(Change, "scale", func(_ context.Context, ev Event) error {
		scale, err := viewstate.ParseScale(ev.Value)
		if err != nil {
			return err
		}
		st.SetScale(scale)
		return nil
	})

	w := rm.Window
	for _, row := range rm.Rows {
		if row.Bar == nil {
			continue
		}
		taskID := row.TaskID
		c.scope.BindQuiet(PointerDown, "bar:"+taskID, func(_ context.Context, ev Event) error {
			mode, err := timeline.ParseMode(ev.Mode)
			if err != nil {
				return err
			}
			return c.gantt.Begin(taskID, mode, w, ev.X, ev.TrackWidth)
		})
	}
	c.scope.BindQuiet(PointerMove, "track", func(_ context.Context, ev Event) error {
		if _, ok := c.gantt.State().(timeline.Dragging); !ok {
			return nil
		}
		_, err := c.gantt.Drag(ev.X)
		return err
	})
	c.scope.Bind(PointerUp, "track", func(context.Context, Event) error {
		if _, ok := c.gantt.State().(timeline.Dragging); !ok {
			return nil
		}
		res, err := c.gantt.Release()
		if err != nil {
			return err
		}
		if res.Changed {
			c.notifier.Notify(res.Message(), notify.Success)
		}
		return nil
	})
}

func (c *Controller) bindFiles(p *model.Project, st *viewstate.ProjectState, view *projection.FilesView) {
	for _, f := range view.Files {
		id := f.ID
		c.scope.Bind(Click, "select-file:"+id, func(context.Context, Event) error {
			c.views.ToggleFile(id)
			return nil
		})
	}
	c.scope.Bind(Click, "select-all-files", func(context.Context, Event) error {
		var ids []string
		for _, f := range c.store.GetFilesByProject(p.ID) {
			ids = append(ids, f.ID)
		}
		c.views.SelectAllFiles(ids)
		return nil
	})
	c.scope.Bind(Click, "clear-files", func(context.Context, Event) error {
		c.views.ClearFiles()
		return nil
	})
	c.scope.Bind(Click, "delete-files", func(context.Context, Event) error {
		n := c.svc.DeleteFiles(c.views.SelectedFiles())
		c.views.ClearFiles()
		if n > 0 {
			c.notifier.Notify(plural(n, "file")+" deleted", notify.Success)
		}
		return nil
	})
	c.bindPager(st, viewstate.TableFiles, view.Page)
}

func (c *Controller) bindMembers(p *model.Project, st *viewstate.ProjectState, view *projection.MembersView) {
	for _, m := range view.Members {
		id := m.ID
		c.scope.Bind(Click, "select-member:"+id, func(context.Context, Event) error {
			c.views.ToggleMember(id)
			return nil
		})
	}
	c.scope.Bind(Click, "select-all-members", func(context.Context, Event) error {
		c.views.SelectAllMembers(p.MemberIDs)
		return nil
	})
	c.scope.Bind(Click, "clear-members", func(context.Context, Event) error {
		c.views.ClearMembers()
		return nil
	})
	c.bindPager(st, viewstate.TableMembers, view.Page)
}
