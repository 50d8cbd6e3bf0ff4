package projection

import (
	"sort"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

type FileRow struct {
	*model.File
	Uploader *UserChip `json:"uploader,omitempty"`
	Selected bool      `json:"selected"`
}

type FilesView struct {
	Files       []*FileRow `json:"files"`
	Page        Page       `json:"page"`
	Selected    int        `json:"selected"`
	AllSelected bool       `json:"all_selected"`
}

// Files lists project files newest first, one page at a time.
func Files(files []*model.File, users []*model.User, p viewstate.Pagination, selected func(id string) bool) *FilesView {
	sorted := append([]*model.File{}, files...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UploadedAt.After(sorted[j].UploadedAt) })

	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	view := &FilesView{Page: Paginate(len(sorted), p), Files: []*FileRow{}}
	view.AllSelected = len(sorted) > 0
	for _, f := range sorted {
		if selected(f.ID) {
			view.Selected++
		} else {
			view.AllSelected = false
		}
	}
	for _, f := range PageOf(sorted, view.Page) {
		copied := *f
		row := &FileRow{File: &copied, Selected: selected(f.ID)}
		if u, ok := byID[f.UploadedBy]; ok {
			row.Uploader = &UserChip{ID: u.ID, Name: u.Name, Initials: u.Initials()}
		}
		view.Files = append(view.Files, row)
	}
	return view
}

type MemberRow struct {
	UserChip
	Email         string `json:"email"`
	JobTitle      string `json:"job_title"`
	Role          string `json:"role"`
	IsLead        bool   `json:"is_lead"`
	AssignedTasks int    `json:"assigned_tasks"`
	Selected      bool   `json:"selected"`
}

type MembersView struct {
	Members  []*MemberRow `json:"members"`
	Page     Page         `json:"page"`
	Selected int          `json:"selected"`
}

// Members lists the project members with their open task counts.
func Members(p *model.Project, members []*model.User, tasks []*model.Task, page viewstate.Pagination, selected func(id string) bool) *MembersView {
	assigned := map[string]int{}
	for _, t := range tasks {
		if !t.IsArchived && t.AssigneeID != nil {
			assigned[*t.AssigneeID]++
		}
	}
	view := &MembersView{Page: Paginate(len(members), page), Members: []*MemberRow{}}
	for _, u := range members {
		if selected(u.ID) {
			view.Selected++
		}
	}
	for _, u := range PageOf(members, view.Page) {
		view.Members = append(view.Members, &MemberRow{
			UserChip:      UserChip{ID: u.ID, Name: u.Name, Initials: u.Initials()},
			Email:         u.Email,
			JobTitle:      u.JobTitle,
			Role:          u.Role,
			IsLead:        p.LeadID != nil && *p.LeadID == u.ID,
			AssignedTasks: assigned[u.ID],
			Selected:      selected(u.ID),
		})
	}
	return view
}
