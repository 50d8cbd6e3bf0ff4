package viewstate

const DefaultPageSize = 25

// Registry owns the view state of every project plus the workspace-level selections.
type Registry struct {
	projects        map[string]*ProjectState
	selectedFiles   map[string]bool
	selectedMembers map[string]bool
	pageSize        int
}

func NewRegistry(pageSize int) *Registry {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Registry{
		projects:        map[string]*ProjectState{},
		selectedFiles:   map[string]bool{},
		selectedMembers: map[string]bool{},
		pageSize:        pageSize,
	}
}

// For returns the state of the project, creating the default on first access.
func (r *Registry) For(projectID string) *ProjectState {
	if s, ok := r.projects[projectID]; ok {
		return s
	}
	s := newProjectState(r.pageSize)
	r.projects[projectID] = s
	return s
}

// Reset drops any state of the project; the next For returns defaults.
func (r *Registry) Reset(projectID string) {
	delete(r.projects, projectID)
}

func (r *Registry) ToggleFile(id string)   { toggle(r.selectedFiles, id) }
func (r *Registry) ToggleMember(id string) { toggle(r.selectedMembers, id) }

func (r *Registry) SelectAllFiles(ids []string) {
	r.selectedFiles = selectAll(r.selectedFiles, ids)
}

func (r *Registry) SelectAllMembers(ids []string) {
	r.selectedMembers = selectAll(r.selectedMembers, ids)
}

func (r *Registry) ClearFiles()   { r.selectedFiles = map[string]bool{} }
func (r *Registry) ClearMembers() { r.selectedMembers = map[string]bool{} }

func (r *Registry) SelectedFiles() []string   { return keys(r.selectedFiles) }
func (r *Registry) SelectedMembers() []string { return keys(r.selectedMembers) }

func (r *Registry) FileSelected(id string) bool   { return r.selectedFiles[id] }
func (r *Registry) MemberSelected(id string) bool { return r.selectedMembers[id] }
