package viewstate

import "sort"

// Pagination is 1-based.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type Roadmap struct {
	Scale  Scale `json:"scale"`
	Offset int   `json:"offset"`
}

// ProjectState is the UI state of one project. The zero value is not usable;
// obtain instances from Registry.For.
type ProjectState struct {
	Search         string                `json:"search"`
	AssigneeFilter []string              `json:"assignee_filter"`
	AssignedToMe   bool                  `json:"assigned_to_me"`
	ShowArchived   bool                  `json:"show_archived"`
	Sort           Sort                  `json:"sort"`
	GroupBy        GroupBy               `json:"group_by"`
	Swimlane       Swimlane              `json:"swimlane"`
	VisibleFields  map[Field]bool        `json:"visible_fields"`
	Collapsed      map[string]bool       `json:"collapsed"`
	SelectedTasks  map[string]bool       `json:"selected_tasks"`
	Pages          map[string]Pagination `json:"pages"`
	Roadmap        Roadmap               `json:"roadmap"`

	defaultPageSize int
}

func newProjectState(pageSize int) *ProjectState {
	return &ProjectState{
		AssigneeFilter:  []string{},
		Sort:            Sort{Field: SortManual, Direction: Asc},
		GroupBy:         GroupStatus,
		Swimlane:        SwimlaneNone,
		VisibleFields:   defaultFields(),
		Collapsed:       map[string]bool{},
		SelectedTasks:   map[string]bool{},
		Pages:           map[string]Pagination{},
		Roadmap:         Roadmap{Scale: ScaleMonth},
		defaultPageSize: pageSize,
	}
}

func (s *ProjectState) SetSearch(q string) {
	s.Search = q
	s.resetPage(TableTasks)
}

// SetAssigneeFilter replaces the multi-select. An empty selection means no filter.
func (s *ProjectState) SetAssigneeFilter(ids []string) {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	s.AssigneeFilter = out
	s.resetPage(TableTasks)
}

func (s *ProjectState) ToggleAssignedToMe() {
	s.AssignedToMe = !s.AssignedToMe
	s.resetPage(TableTasks)
}

func (s *ProjectState) ToggleShowArchived() {
	s.ShowArchived = !s.ShowArchived
	s.resetPage(TableTasks)
}

// SelectSort flips the direction when field is already active, otherwise
// switches to field ascending.
func (s *ProjectState) SelectSort(field SortField) {
	if s.Sort.Field == field {
		if s.Sort.Direction == Asc {
			s.Sort.Direction = Desc
		} else {
			s.Sort.Direction = Asc
		}
		return
	}
	s.Sort = Sort{Field: field, Direction: Asc}
}

func (s *ProjectState) SetGroupBy(g GroupBy) {
	if s.GroupBy != g {
		s.Collapsed = map[string]bool{}
	}
	s.GroupBy = g
}

func (s *ProjectState) SetSwimlane(l Swimlane) {
	s.Swimlane = l
}

func (s *ProjectState) ToggleField(f Field) {
	s.VisibleFields[f] = !s.FieldVisible(f)
}

func (s *ProjectState) FieldVisible(f Field) bool {
	if v, ok := s.VisibleFields[f]; ok {
		return v
	}
	return defaultFields()[f]
}

func (s *ProjectState) ToggleCollapsed(groupKey string) {
	if s.Collapsed[groupKey] {
		delete(s.Collapsed, groupKey)
		return
	}
	s.Collapsed[groupKey] = true
}

func (s *ProjectState) IsCollapsed(groupKey string) bool {
	return s.Collapsed[groupKey]
}

func (s *ProjectState) ToggleSelected(taskID string) {
	toggle(s.SelectedTasks, taskID)
}

// SelectAll selects exactly ids, or clears the selection when all of them
// are already selected.
func (s *ProjectState) SelectAll(ids []string) {
	s.SelectedTasks = selectAll(s.SelectedTasks, ids)
}

func (s *ProjectState) ClearSelection() {
	s.SelectedTasks = map[string]bool{}
}

// SelectedTaskIDs returns the selection in a stable order.
func (s *ProjectState) SelectedTaskIDs() []string {
	return keys(s.SelectedTasks)
}

// Page returns the pagination of a table, defaulted when never touched.
func (s *ProjectState) Page(table string) Pagination {
	if p, ok := s.Pages[table]; ok {
		return p
	}
	return Pagination{Page: 1, PageSize: s.defaultPageSize}
}

func (s *ProjectState) SetPage(table string, page int) {
	p := s.Page(table)
	if page < 1 {
		page = 1
	}
	p.Page = page
	s.Pages[table] = p
}

func (s *ProjectState) SetPageSize(table string, size int) {
	if size < 1 {
		size = s.defaultPageSize
	}
	s.Pages[table] = Pagination{Page: 1, PageSize: size}
}

func (s *ProjectState) resetPage(table string) {
	if p, ok := s.Pages[table]; ok {
		p.Page = 1
		s.Pages[table] = p
	}
}

func (s *ProjectState) SetScale(scale Scale) {
	s.Roadmap = Roadmap{Scale: scale}
}

// ShiftRoadmap moves the window by delta scale-sized steps.
func (s *ProjectState) ShiftRoadmap(delta int) {
	s.Roadmap.Offset += delta
}

func (s *ProjectState) RoadmapToday() {
	s.Roadmap.Offset = 0
}

func toggle(set map[string]bool, id string) {
	if set[id] {
		delete(set, id)
		return
	}
	set[id] = true
}

func selectAll(current map[string]bool, ids []string) map[string]bool {
	all := len(ids) > 0
	for _, id := range ids {
		if !current[id] {
			all = false
			break
		}
	}
	next := map[string]bool{}
	if all {
		return next
	}
	for _, id := range ids {
		next[id] = true
	}
	return next
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a deep copy that is safe to hand out after the lock is released.
func (s *ProjectState) Snapshot() *ProjectState {
	cp := *s
	cp.AssigneeFilter = append([]string{}, s.AssigneeFilter...)
	cp.VisibleFields = make(map[Field]bool, len(s.VisibleFields))
	for k, v := range s.VisibleFields {
		cp.VisibleFields[k] = v
	}
	cp.Collapsed = copySet(s.Collapsed)
	cp.SelectedTasks = copySet(s.SelectedTasks)
	cp.Pages = make(map[string]Pagination, len(s.Pages))
	for k, v := range s.Pages {
		cp.Pages[k] = v
	}
	return &cp
}

func copySet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}
