package repository

import (
	"strconv"
	"strings"
	"unicode"

	"planboard/internal/model"
)

func (s *Store) ListProjects() []*model.Project {
	return append([]*model.Project{}, s.projects...)
}

func (s *Store) GetProjectByID(id string) (*model.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProjectNotFound
}

func (s *Store) GetProjectBySlug(slug string) (*model.Project, error) {
	for _, p := range s.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrProjectNotFound
}

// CreateProject appends the project; id and timestamps are filled when empty.
func (s *Store) CreateProject(p *model.Project) {
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}
	s.projects = append(s.projects, p)
}

func (s *Store) TouchProject(p *model.Project) {
	p.UpdatedAt = s.now()
}

// DeleteProject removes the project and cascades its tasks, files, statuses and labels.
func (s *Store) DeleteProject(id string) error {
	idx := -1
	for i, p := range s.projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProjectNotFound
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	s.tasks = filter(s.tasks, func(t *model.Task) bool { return t.ProjectID != id })
	s.files = filter(s.files, func(f *model.File) bool { return f.ProjectID != id })
	s.statuses = filter(s.statuses, func(st *model.Status) bool { return st.ProjectID != id })
	s.labels = filter(s.labels, func(l *model.Label) bool { return l.ProjectID != id })
	return nil
}

// UniqueSlug slugifies name and appends -2, -3... until no other project uses it.
func (s *Store) UniqueSlug(name, exceptID string) string {
	base := Slugify(name)
	if base == "" {
		base = "project"
	}
	slug := base
	for n := 2; s.slugTaken(slug, exceptID); n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	return slug
}

func (s *Store) slugTaken(slug, exceptID string) bool {
	for _, p := range s.projects {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Slugify lower-cases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
