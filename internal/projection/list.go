package projection

import (
	"planboard/internal/bucket"
	"planboard/internal/viewstate"
)

type ListGroup struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Color     string        `json:"color"`
	BucketKey string        `json:"bucket,omitempty"`
	Bucket    bucket.Bucket `json:"-"`
	Count     int           `json:"count"`
	Collapsed bool          `json:"collapsed"`
	Tasks     []*TaskView   `json:"tasks"`
}

type ListView struct {
	GroupBy viewstate.GroupBy `json:"group_by"`
	Sort    viewstate.Sort    `json:"sort"`
	Fields  []viewstate.Field `json:"fields"`
	Groups  []*ListGroup      `json:"groups"`
	Total   int               `json:"total"`
	Page    *Page             `json:"page,omitempty"`
}

// List runs filter, group and sort for the list tab. Collapsed groups keep
// their count but carry no rows. Only the ungrouped list is paginated.
func (c *Computer) List(ds *Dataset, st *viewstate.ProjectState) *ListView {
	idx := newIndex(ds)
	filtered := filterWith(idx, ds, st)
	groups := c.Group(ds, filtered, st.GroupBy)

	view := &ListView{
		GroupBy: st.GroupBy,
		Sort:    st.Sort,
		Fields:  visibleFields(st),
		Groups:  make([]*ListGroup, 0, len(groups)),
		Total:   len(filtered),
	}
	for _, g := range groups {
		sorted := SortTasks(g.Tasks, st.Sort, ds.Priorities)
		lg := &ListGroup{
			Key:       g.Key,
			Label:     g.Label,
			Color:     g.Color,
			Bucket:    g.Bucket,
			Count:     len(sorted),
			Collapsed: st.IsCollapsed(g.Key),
			Tasks:     []*TaskView{},
		}
		if g.Bucket != nil {
			lg.BucketKey = g.Bucket.Key()
		}
		if st.GroupBy == viewstate.GroupNone {
			page := Paginate(len(sorted), st.Page(viewstate.TableTasks))
			view.Page = &page
			sorted = PageOf(sorted, page)
		}
		if !lg.Collapsed {
			lg.Tasks = idx.views(sorted, ds.Today, st.SelectedTasks)
		}
		view.Groups = append(view.Groups, lg)
	}
	return view
}

func visibleFields(st *viewstate.ProjectState) []viewstate.Field {
	out := []viewstate.Field{}
	for _, f := range viewstate.AllFields {
		if st.FieldVisible(f) {
			out = append(out, f)
		}
	}
	return out
}
