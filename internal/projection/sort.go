package projection

import (
	"sort"
	"strings"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

// SortTasks returns a sorted copy. Ties fall back to manual order so the result is deterministic.
func SortTasks(tasks []*model.Task, order viewstate.Sort, priorities []*model.Priority) []*model.Task {
	rank := map[string]int{}
	for _, p := range priorities {
		rank[p.ID] = p.SortOrder
	}
	out := append([]*model.Task{}, tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], order, rank)
	})
	return out
}

func less(a, b *model.Task, order viewstate.Sort, rank map[string]int) bool {
	// Undated tasks stay last whatever the direction.
	if order.Field == viewstate.SortDueDate && (a.DueDate == nil) != (b.DueDate == nil) {
		return b.DueDate == nil
	}
	c := compare(a, b, order.Field, rank)
	if c == 0 {
		return manualLess(a, b)
	}
	if order.Direction == viewstate.Desc {
		return c > 0
	}
	return c < 0
}

func compare(a, b *model.Task, field viewstate.SortField, rank map[string]int) int {
	switch field {
	case viewstate.SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case viewstate.SortPriority:
		return cmpInt(priorityRank(a, rank), priorityRank(b, rank))
	case viewstate.SortDueDate:
		if a.DueDate == nil || b.DueDate == nil {
			return 0
		}
		return a.DueDate.Time.Compare(b.DueDate.Time)
	case viewstate.SortCreated:
		return a.CreatedAt.Compare(b.CreatedAt)
	case viewstate.SortUpdated:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return cmpInt(a.SortOrder, b.SortOrder)
}

// priorityRank puts tasks without a (resolvable) priority below every priority.
func priorityRank(t *model.Task, rank map[string]int) int {
	if t.PriorityID != nil {
		if r, ok := rank[*t.PriorityID]; ok {
			return r
		}
	}
	return minRank
}

const minRank = -1 << 31

func manualLess(a, b *model.Task) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.SequenceID < b.SequenceID
}

// ByManualOrder sorts by sort_order, the order the board always uses.
func ByManualOrder(tasks []*model.Task) []*model.Task {
	out := append([]*model.Task{}, tasks...)
	sort.SliceStable(out, func(i, j int) bool { return manualLess(out[i], out[j]) })
	return out
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
