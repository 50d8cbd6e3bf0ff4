package projection

import (
	"planboard/internal/bucket"
	"planboard/internal/model"
	"planboard/internal/viewstate"
)

type Lane struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Color     string        `json:"color"`
	BucketKey string        `json:"bucket,omitempty"`
	Bucket    bucket.Bucket `json:"-"`
	Tasks     []*TaskView   `json:"tasks"`
}

type Column struct {
	Status    Chip                 `json:"status"`
	Category  model.StatusCategory `json:"category"`
	BucketKey string               `json:"bucket"`
	Bucket    bucket.Status        `json:"-"`
	Count     int                  `json:"count"`
	Tasks     []*TaskView          `json:"tasks,omitempty"`
	Lanes     []*Lane              `json:"lanes,omitempty"`
}

type BoardView struct {
	Swimlane viewstate.Swimlane `json:"swimlane"`
	Columns  []*Column          `json:"columns"`
	Progress int                `json:"progress"`
}

// Board always columns by status and orders cards by sort_order; the sort
// setting does not apply. With a swimlane each column is split into lanes and
// empty lanes are omitted. Tasks whose status does not resolve are not shown.
func (c *Computer) Board(ds *Dataset, st *viewstate.ProjectState) *BoardView {
	idx := newIndex(ds)
	filtered := ByManualOrder(filterWith(idx, ds, st))

	view := &BoardView{
		Swimlane: st.Swimlane,
		Columns:  make([]*Column, 0, len(ds.Statuses)),
		Progress: Progress(ds.Tasks, ds.Statuses),
	}
	for _, g := range groupByStatus(idx, ds, filtered) {
		sb, ok := g.Bucket.(bucket.Status)
		if !ok {
			continue
		}
		s := idx.status(sb.StatusID)
		col := &Column{
			Status:    Chip{ID: s.ID, Name: s.Name, Color: s.Color},
			Category:  s.Category,
			BucketKey: sb.Key(),
			Bucket:    sb,
			Count:     len(g.Tasks),
		}
		switch st.Swimlane {
		case viewstate.SwimlanePriority, viewstate.SwimlaneAssignee:
			col.Lanes = c.lanes(idx, ds, st, g.Tasks)
		default:
			col.Tasks = idx.views(g.Tasks, ds.Today, st.SelectedTasks)
		}
		view.Columns = append(view.Columns, col)
	}
	return view
}

func (c *Computer) lanes(idx *index, ds *Dataset, st *viewstate.ProjectState, tasks []*model.Task) []*Lane {
	by := viewstate.GroupPriority
	if st.Swimlane == viewstate.SwimlaneAssignee {
		by = viewstate.GroupAssignee
	}
	lanes := []*Lane{}
	for _, g := range c.Group(ds, tasks, by) {
		if len(g.Tasks) == 0 {
			continue
		}
		lane := &Lane{Key: g.Key, Label: g.Label, Color: g.Color, Bucket: g.Bucket, Tasks: idx.views(g.Tasks, ds.Today, st.SelectedTasks)}
		if g.Bucket != nil {
			lane.BucketKey = g.Bucket.Key()
		}
		lanes = append(lanes, lane)
	}
	return lanes
}
