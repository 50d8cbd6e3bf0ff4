package projection

import (
	"strings"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

// Filter applies, in order and AND-combined: archived visibility, assigned-to-me,
// the assignee multi-select and the free-text search.
func Filter(ds *Dataset, st *viewstate.ProjectState) []*model.Task {
	idx := newIndex(ds)
	return filterWith(idx, ds, st)
}

func filterWith(idx *index, ds *Dataset, st *viewstate.ProjectState) []*model.Task {
	assignees := map[string]bool{}
	for _, id := range st.AssigneeFilter {
		assignees[id] = true
	}
	query := strings.ToLower(strings.TrimSpace(st.Search))

	out := []*model.Task{}
	for _, t := range ds.Tasks {
		if t.IsArchived && !st.ShowArchived {
			continue
		}
		if st.AssignedToMe && (t.AssigneeID == nil || *t.AssigneeID != ds.CurrentUserID) {
			continue
		}
		if len(assignees) > 0 && !matchesAssignee(t, assignees) {
			continue
		}
		if query != "" && !idx.matchesSearch(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesAssignee(t *model.Task, selected map[string]bool) bool {
	if t.AssigneeID == nil {
		return selected[viewstate.UnassignedFilter]
	}
	return selected[*t.AssigneeID]
}

// matchesSearch expects query already lower-cased.
func (idx *index) matchesSearch(t *model.Task, query string) bool {
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), query) }

	if contains(t.Title) || contains(t.Description) || contains(idx.taskKey(t)) {
		return true
	}
	if u := idx.user(t.AssigneeID); u != nil && contains(u.Name) {
		return true
	}
	for _, id := range t.LabelIDs {
		if l, ok := idx.labels[id]; ok && contains(l.Name) {
			return true
		}
	}
	return false
}
