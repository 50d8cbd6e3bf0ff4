package projection

import (
	"fmt"
	"sort"
	"strings"

	"planboard/internal/bucket"
	"planboard/internal/model"
	"planboard/internal/viewstate"
)

// PriorityMode selects how grouping by priority partitions tasks.
type PriorityMode string

const (
	// PriorityFixed always renders High, Medium, Low and No Priority.
	PriorityFixed PriorityMode = "fixed"
	// PriorityDynamic renders one group per priority entity plus No Priority.
	PriorityDynamic PriorityMode = "dynamic"
)

func ParsePriorityMode(s string) (PriorityMode, error) {
	switch m := PriorityMode(strings.ToLower(s)); m {
	case PriorityFixed, PriorityDynamic:
		return m, nil
	}
	return "", fmt.Errorf("unknown priority grouping %q", s)
}

// Group keys that are not derived from a bucket.
const (
	AllGroupKey           = "all"
	UnknownStatusGroupKey = "status-unknown"
)

// Group is one partition of a projection. Bucket is nil for groups a drop
// cannot reclassify into (the "All Tasks" group, lookup-miss groups).
type Group struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Color     string        `json:"color"`
	Bucket    bucket.Bucket `json:"-"`
	Tasks     []*model.Task `json:"-"`
	Collapsed bool          `json:"collapsed"`
}

// Computer holds the configuration projections depend on.
type Computer struct {
	PriorityMode PriorityMode
}

func NewComputer(mode PriorityMode) *Computer {
	if mode == "" {
		mode = PriorityFixed
	}
	return &Computer{PriorityMode: mode}
}

// Group partitions tasks. Every task lands in exactly one group and the input
// order is kept inside each group.
func (c *Computer) Group(ds *Dataset, tasks []*model.Task, by viewstate.GroupBy) []*Group {
	idx := newIndex(ds)
	switch by {
	case viewstate.GroupStatus:
		return groupByStatus(idx, ds, tasks)
	case viewstate.GroupPriority:
		if c.PriorityMode == PriorityDynamic {
			return groupByPriorityDynamic(idx, ds, tasks)
		}
		return groupByPriorityFixed(idx, ds, tasks)
	case viewstate.GroupAssignee:
		return groupByAssignee(idx, ds, tasks)
	}
	return []*Group{{Key: AllGroupKey, Label: "All Tasks", Color: NeutralColor, Tasks: append([]*model.Task{}, tasks...)}}
}

func groupByStatus(idx *index, ds *Dataset, tasks []*model.Task) []*Group {
	groups := make([]*Group, 0, len(ds.Statuses)+1)
	byKey := map[string]*Group{}
	for _, s := range ds.Statuses {
		b := bucket.Status{StatusID: s.ID}
		g := &Group{Key: b.Key(), Label: s.Name, Color: s.Color, Bucket: b, Tasks: []*model.Task{}}
		groups = append(groups, g)
		byKey[s.ID] = g
	}
	var unknown *Group
	for _, t := range tasks {
		if g, ok := byKey[t.StatusID]; ok {
			g.Tasks = append(g.Tasks, t)
			continue
		}
		if unknown == nil {
			unknown = &Group{Key: UnknownStatusGroupKey, Label: "Unknown status", Color: NeutralColor}
		}
		unknown.Tasks = append(unknown.Tasks, t)
	}
	if unknown != nil {
		groups = append(groups, unknown)
	}
	return groups
}

type fixedLevel struct {
	key   string
	label string
	name  string
}

var fixedLevels = []fixedLevel{
	{key: "priority-high", label: "High", name: "high"},
	{key: "priority-medium", label: "Medium", name: "medium"},
	{key: "priority-low", label: "Low", name: "low"},
}

// groupByPriorityFixed maps priorities named High/Medium/Low onto their group.
// Any other priority joins the named level closest in sort order (more urgent
// on ties); with no named levels at all it falls into No Priority.
func groupByPriorityFixed(idx *index, ds *Dataset, tasks []*model.Task) []*Group {
	groups := make([]*Group, 0, len(fixedLevels)+1)
	anchors := map[int]*model.Priority{}
	for i, level := range fixedLevels {
		g := &Group{Key: level.key, Label: level.label, Color: NeutralColor, Tasks: []*model.Task{}}
		for _, p := range ds.Priorities {
			if strings.EqualFold(strings.TrimSpace(p.Name), level.name) {
				g.Color = p.Color
				g.Bucket = bucket.Priority{PriorityID: model.StringPtr(p.ID)}
				anchors[i] = p
				break
			}
		}
		groups = append(groups, g)
	}
	none := &Group{Key: bucket.PriorityNone, Label: "No Priority", Color: NeutralColor, Bucket: bucket.Priority{}, Tasks: []*model.Task{}}
	groups = append(groups, none)

	levelOf := func(p *model.Priority) int {
		best, bestDist := -1, 0
		for i := range fixedLevels {
			a, ok := anchors[i]
			if !ok {
				continue
			}
			if a.ID == p.ID {
				return i
			}
			dist := a.SortOrder - p.SortOrder
			if dist < 0 {
				dist = -dist
			}
			if best < 0 || dist < bestDist {
				best, bestDist = i, dist
			}
		}
		return best
	}

	for _, t := range tasks {
		p := idx.priority(t.PriorityID)
		if p == nil {
			none.Tasks = append(none.Tasks, t)
			continue
		}
		if level := levelOf(p); level >= 0 {
			groups[level].Tasks = append(groups[level].Tasks, t)
			continue
		}
		none.Tasks = append(none.Tasks, t)
	}
	return groups
}

func groupByPriorityDynamic(idx *index, ds *Dataset, tasks []*model.Task) []*Group {
	priorities := append([]*model.Priority{}, ds.Priorities...)
	sort.SliceStable(priorities, func(i, j int) bool { return priorities[i].SortOrder > priorities[j].SortOrder })

	groups := make([]*Group, 0, len(priorities)+1)
	byID := map[string]*Group{}
	for _, p := range priorities {
		b := bucket.Priority{PriorityID: model.StringPtr(p.ID)}
		g := &Group{Key: b.Key(), Label: p.Name, Color: p.Color, Bucket: b, Tasks: []*model.Task{}}
		groups = append(groups, g)
		byID[p.ID] = g
	}
	none := &Group{Key: bucket.PriorityNone, Label: "No Priority", Color: NeutralColor, Bucket: bucket.Priority{}, Tasks: []*model.Task{}}
	groups = append(groups, none)

	for _, t := range tasks {
		if p := idx.priority(t.PriorityID); p != nil {
			byID[p.ID].Tasks = append(byID[p.ID].Tasks, t)
			continue
		}
		none.Tasks = append(none.Tasks, t)
	}
	return groups
}

// groupByAssignee renders Unassigned first, then every user assigned to at
// least one task of the project, alphabetically by name.
func groupByAssignee(idx *index, ds *Dataset, tasks []*model.Task) []*Group {
	unassigned := &Group{Key: bucket.Unassigned, Label: "Unassigned", Color: NeutralColor, Bucket: bucket.Assignee{}, Tasks: []*model.Task{}}

	var users []*model.User
	seen := map[string]bool{}
	for _, t := range ds.Tasks {
		u := idx.user(t.AssigneeID)
		if u == nil || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})

	groups := []*Group{unassigned}
	byID := map[string]*Group{}
	for _, u := range users {
		b := bucket.Assignee{UserID: model.StringPtr(u.ID)}
		g := &Group{Key: b.Key(), Label: u.Name, Color: NeutralColor, Bucket: b, Tasks: []*model.Task{}}
		groups = append(groups, g)
		byID[u.ID] = g
	}
	for _, t := range tasks {
		if u := idx.user(t.AssigneeID); u != nil {
			if g, ok := byID[u.ID]; ok {
				g.Tasks = append(g.Tasks, t)
				continue
			}
		}
		unassigned.Tasks = append(unassigned.Tasks, t)
	}
	return groups
}
