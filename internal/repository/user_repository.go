package repository

import (
	"sort"

	"planboard/internal/model"
)

func (s *Store) ListUsers() []*model.User {
	return append([]*model.User{}, s.users...)
}

func (s *Store) GetUserByID(id string) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// CurrentUser is the designated first user; nil when no users were loaded.
func (s *Store) CurrentUser() *model.User {
	if len(s.users) == 0 {
		return nil
	}
	return s.users[0]
}

// GetProjectMembers resolves member ids, skipping unknown users.
func (s *Store) GetProjectMembers(p *model.Project) []*model.User {
	var out []*model.User
	for _, id := range p.MemberIDs {
		if u, err := s.GetUserByID(id); err == nil {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) GetFilesByProject(projectID string) []*model.File {
	var out []*model.File
	for _, f := range s.files {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) GetFileByID(id string) (*model.File, error) {
	for _, f := range s.files {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, ErrFileNotFound
}

func (s *Store) DeleteFile(id string) error {
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return nil
		}
	}
	return ErrFileNotFound
}

func sortPriorities(ps []*model.Priority) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].SortOrder > ps[j].SortOrder })
}
