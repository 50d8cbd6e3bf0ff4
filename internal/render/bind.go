package render

import (
	"context"
	"strconv"

	"planboard/internal/bucket"
	"planboard/internal/dnd"
	"planboard/internal/model"
	"planboard/internal/notify"
	"planboard/internal/projection"
	"planboard/internal/service"
	"planboard/internal/viewstate"
)

// Event types.
const (
	Click       = "click"
	Input       = "input"
	Change      = "change"
	Submit      = "submit"
	PointerDown = "pointerdown"
	PointerMove = "pointermove"
	PointerUp   = "pointerup"
	Drop        = "drop"
	KeyDown     = "keydown"
)

var palette = []Choice{
	{Value: "#6366f1", Label: "Indigo", Color: "#6366f1"},
	{Value: "#3b82f6", Label: "Blue", Color: "#3b82f6"},
	{Value: "#22c55e", Label: "Green", Color: "#22c55e"},
	{Value: "#f59e0b", Label: "Amber", Color: "#f59e0b"},
	{Value: "#ef4444", Label: "Red", Color: "#ef4444"},
	{Value: "#ec4899", Label: "Pink", Color: "#ec4899"},
}

func (c *Controller) bindCommon(p *model.Project) {
	for _, tab := range viewstate.AllTabs {
		tab := tab
		c.scope.Bind(Click, "tab:"+string(tab), func(context.Context, Event) error {
			c.route.Tab = tab
			return nil
		})
	}
	// Escape closes the newest overlay; only with none open does it abort a drag.
	c.scope.BindQuiet(KeyDown, "escape", func(context.Context, Event) error {
		if c.overlays.Escape() {
			return nil
		}
		c.drag.Cancel()
		c.gantt.Cancel()
		return nil
	})
	c.scope.Bind(Click, "favorite", func(context.Context, Event) error {
		_, err := c.svc.ToggleProjectFavorite(p.ID)
		return err
	})
	c.scope.BindQuiet(Click, "project-color", func(context.Context, Event) error {
		c.overlays.Open(ColorPicker, "project-color", palette, func(_ context.Context, value string) error {
			_, _, err := c.svc.UpdateProjectSettings(p.ID, service.ProjectPatch{Color: &value})
			return err
		})
		return nil
	})
}

func (c *Controller) bindFilters(st *viewstate.ProjectState) {
	c.scope.Bind(Input, "search", func(_ context.Context, ev Event) error {
		st.SetSearch(ev.Value)
		return nil
	})
	c.scope.Bind(Change, "assignee-filter", func(_ context.Context, ev Event) error {
		st.SetAssigneeFilter(ev.Values)
		return nil
	})
	c.scope.Bind(Click, "assigned-to-me", func(context.Context, Event) error {
		st.ToggleAssignedToMe()
		return nil
	})
	c.scope.Bind(Click, "show-archived", func(context.Context, Event) error {
		st.ToggleShowArchived()
		return nil
	})
}

func (c *Controller) bindList(p *model.Project, st *viewstate.ProjectState, ds *projection.Dataset, view *projection.ListView) {
	for _, f := range []viewstate.SortField{viewstate.SortManual, viewstate.SortTitle, viewstate.SortPriority, viewstate.SortDueDate, viewstate.SortCreated, viewstate.SortUpdated} {
		f := f
		c.scope.Bind(Click, "sort:"+string(f), func(context.Context, Event) error {
			st.SelectSort(f)
			return nil
		})
	}
	c.scope.Bind(Change, "group-by", func(_ context.Context, ev Event) error {
		g, err := viewstate.ParseGroupBy(ev.Value)
		if err != nil {
			return err
		}
		st.SetGroupBy(g)
		return nil
	})
	for _, f := range viewstate.AllFields {
		f := f
		c.scope.Bind(Click, "field:"+string(f), func(context.Context, Event) error {
			st.ToggleField(f)
			return nil
		})
	}

	var visible []string
	for _, g := range view.Groups {
		g := g
		c.scope.Bind(Click, "collapse:"+g.Key, func(context.Context, Event) error {
			st.ToggleCollapsed(g.Key)
			return nil
		})
		c.bindQuickAdd(p, g.Key, g.Bucket)
		c.bindDrop(g.Key, g.Bucket)
		for _, t := range g.Tasks {
			visible = append(visible, t.ID)
			c.bindRow(p, st, t.ID)
		}
	}

	c.scope.Bind(Click, "select-all", func(context.Context, Event) error {
		st.SelectAll(visible)
		return nil
	})
	c.scope.Bind(Click, "clear-selection", func(context.Context, Event) error {
		st.ClearSelection()
		return nil
	})
	c.scope.Bind(Click, "archive-selected", func(context.Context, Event) error {
		archived, err := c.svc.ArchiveTasks(st.SelectedTaskIDs())
		if err != nil {
			return err
		}
		st.ClearSelection()
		c.notifier.Notify(plural(len(archived), "task")+" archived", notify.Success)
		return nil
	})
	if view.Page != nil {
		c.bindPager(st, viewstate.TableTasks, *view.Page)
	}
	c.bindDropOutside()
}

// bindRow binds the per-task listeners of a list row.
func (c *Controller) bindRow(p *model.Project, st *viewstate.ProjectState, taskID string) {
	c.scope.Bind(Click, "select:"+taskID, func(context.Context, Event) error {
		st.ToggleSelected(taskID)
		return nil
	})
	c.bindDraggable(taskID)
	c.scope.BindQuiet(Click, "menu-status:"+taskID, func(context.Context, Event) error {
		c.openMenu(taskID, "menu-status:"+taskID, c.statusOptions(p))
		return nil
	})
	c.scope.BindQuiet(Click, "menu-priority:"+taskID, func(context.Context, Event) error {
		c.openMenu(taskID, "menu-priority:"+taskID, c.priorityOptions())
		return nil
	})
	c.scope.BindQuiet(Click, "menu-assignee:"+taskID, func(context.Context, Event) error {
		c.openMenu(taskID, "menu-assignee:"+taskID, c.assigneeOptions(p))
		return nil
	})
	c.scope.BindQuiet(Click, "due-date:"+taskID, func(context.Context, Event) error {
		c.overlays.Open(DatePicker, "due-date:"+taskID, nil, func(_ context.Context, value string) error {
			patch := service.TaskPatch{ClearDueDate: value == ""}
			if value != "" {
				d, err := model.ParseDate(value)
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			_, err := c.svc.UpdateTask(taskID, patch)
			return err
		})
		return nil
	})
}

func (c *Controller) bindDraggable(taskID string) {
	c.scope.BindQuiet(PointerDown, "drag:"+taskID, func(context.Context, Event) error {
		return c.drag.Begin(taskID)
	})
	c.scope.BindQuiet(PointerMove, "hover:"+taskID, func(_ context.Context, ev Event) error {
		if _, ok := c.drag.State().(dnd.Dragging); !ok {
			return nil
		}
		_, err := c.drag.Hover(taskID, ev.Y, ev.Top, ev.Height)
		return err
	})
}

func (c *Controller) bindQuickAdd(p *model.Project, key string, b bucket.Bucket) {
	c.scope.Bind(Submit, "quick-add:"+key, func(_ context.Context, ev Event) error {
		t, err := c.svc.QuickAddTask(p.ID, b, ev.Value)
		if err != nil {
			return err
		}
		c.notifier.Notify("Created "+t.Key(p.Identifier), notify.Success)
		return nil
	})
}

// bindDrop binds a drop container. Containers without a bucket still accept
// drops; they only reorder.
func (c *Controller) bindDrop(key string, buckets ...bucket.Bucket) {
	var target []bucket.Bucket
	for _, b := range buckets {
		if b != nil {
			target = append(target, b)
		}
	}
	c.scope.Bind(Drop, "drop:"+key, func(_ context.Context, ev Event) error {
		d, ok := c.drag.State().(dnd.Dragging)
		if !ok {
			return nil
		}
		t := dnd.Target{Buckets: target, TaskID: ev.TargetID}
		switch {
		case d.Indicator != nil && d.Indicator.TargetID == ev.TargetID:
			t.Side = d.Indicator.Side
		case ev.Height > 0:
			t.Side = dnd.SideOf(ev.Y, ev.Top, ev.Height)
		}
		res, err := c.drag.Drop(t)
		if err != nil {
			return err
		}
		if msg := res.Message(); msg != "" {
			c.notifier.Notify(msg, notify.Success)
		}
		return nil
	})
}

func (c *Controller) bindDropOutside() {
	c.scope.Bind(PointerUp, "drop-outside", func(context.Context, Event) error {
		if _, ok := c.drag.State().(dnd.Dragging); ok {
			_, err := c.drag.DropOutside()
			return err
		}
		return nil
	})
}

func (c *Controller) bindBoard(p *model.Project, st *viewstate.ProjectState, view *projection.BoardView) {
	c.scope.Bind(Change, "swimlane", func(_ context.Context, ev Event) error {
		l, err := viewstate.ParseSwimlane(ev.Value)
		if err != nil {
			return err
		}
		st.SetSwimlane(l)
		return nil
	})
	for _, col := range view.Columns {
		c.bindQuickAdd(p, col.BucketKey, col.Bucket)
		c.bindDrop(col.BucketKey, col.Bucket)
		for _, t := range col.Tasks {
			c.bindDraggable(t.ID)
		}
		for _, lane := range col.Lanes {
			c.bindDrop(col.BucketKey+"/"+lane.Key, col.Bucket, lane.Bucket)
			for _, t := range lane.Tasks {
				c.bindDraggable(t.ID)
			}
		}
	}
	c.bindDropOutside()
}

func (c *Controller) bindPager(st *viewstate.ProjectState, table string, page projection.Page) {
	c.scope.Bind(Click, "page-prev:"+table, func(context.Context, Event) error {
		st.SetPage(table, page.Page-1)
		return nil
	})
	c.scope.Bind(Click, "page-next:"+table, func(context.Context, Event) error {
		if page.Page < page.TotalPages {
			st.SetPage(table, page.Page+1)
		}
		return nil
	})
	c.scope.Bind(Change, "page-size:"+table, func(_ context.Context, ev Event) error {
		size, err := strconv.Atoi(ev.Value)
		if err != nil {
			return err
		}
		st.SetPageSize(table, size)
		return nil
	})
}

// openMenu shows a classification dropdown whose option values are bucket keys.
func (c *Controller) openMenu(taskID, target string, options []Choice) {
	c.overlays.Open(Dropdown, target, options, func(_ context.Context, value string) error {
		b, err := bucket.ParseKey(value)
		if err != nil {
			return err
		}
		res, err := c.svc.MoveTask(taskID, dnd.Target{Buckets: []bucket.Bucket{b}})
		if err != nil {
			return err
		}
		if msg := res.Message(); msg != "" {
			c.notifier.Notify(msg, notify.Success)
		}
		return nil
	})
}

func (c *Controller) statusOptions(p *model.Project) []Choice {
	var out []Choice
	for _, s := range c.store.GetStatusesByProject(p.ID) {
		out = append(out, Choice{Value: bucket.Status{StatusID: s.ID}.Key(), Label: s.Name, Color: s.Color})
	}
	return out
}

func (c *Controller) priorityOptions() []Choice {
	var out []Choice
	for _, pr := range c.store.ListPriorities() {
		out = append(out, Choice{Value: bucket.Priority{PriorityID: model.StringPtr(pr.ID)}.Key(), Label: pr.Name, Color: pr.Color})
	}
	return append(out, Choice{Value: bucket.PriorityNone, Label: "No Priority", Color: projection.NeutralColor})
}

func (c *Controller) assigneeOptions(p *model.Project) []Choice {
	out := []Choice{{Value: bucket.Unassigned, Label: "Unassigned"}}
	for _, u := range c.store.GetProjectMembers(p) {
		out = append(out, Choice{Value: bucket.Assignee{UserID: model.StringPtr(u.ID)}.Key(), Label: u.Name})
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
