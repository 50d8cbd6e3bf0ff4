package service

import (
	"fmt"
	"strings"
	"unicode"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

type ProjectInput struct {
	Name        string
	Identifier  string
	Description string
	Color       string
	DefaultView string
	LeadID      *string
	MemberIDs   []string
}

// ProjectPatch holds the settings to change; nil fields are left alone.
type ProjectPatch struct {
	Name        *string
	Identifier  *string
	Description *string
	Color       *string
	DefaultView *string
	LeadID      *string
}

var defaultStatuses = []struct {
	name     string
	color    string
	category model.StatusCategory
}{
	{"Backlog", "#a3a3a3", model.CategoryBacklog},
	{"Todo", "#6b7280", model.CategoryTodo},
	{"In Progress", "#3b82f6", model.CategoryInProgress},
	{"Done", "#22c55e", model.CategoryDone},
	{"Cancelled", "#ef4444", model.CategoryCancelled},
}

const defaultProjectColor = "#6366f1"

// CreateProject adds a project with the default workflow. The current user
// becomes a member when no members are given.
func (s *Service) CreateProject(in ProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	view, err := defaultView(in.DefaultView)
	if err != nil {
		return nil, err
	}
	identifier := strings.ToUpper(strings.TrimSpace(in.Identifier))
	if identifier == "" {
		identifier = deriveIdentifier(name)
	}
	members := in.MemberIDs
	if len(members) == 0 {
		if u := s.store.CurrentUser(); u != nil {
			members = []string{u.ID}
		}
	}
	color := in.Color
	if color == "" {
		color = defaultProjectColor
	}

	p := &model.Project{
		Name:        name,
		Identifier:  identifier,
		Slug:        s.store.UniqueSlug(name, ""),
		Description: in.Description,
		Color:       color,
		DefaultView: string(view),
		LeadID:      in.LeadID,
		MemberIDs:   members,
	}
	s.store.CreateProject(p)
	for i, st := range defaultStatuses {
		s.store.CreateStatus(&model.Status{
			ProjectID: p.ID,
			Name:      st.name,
			Color:     st.color,
			Category:  st.category,
			SortOrder: i + 1,
		})
	}
	return p, nil
}

// UpdateProjectSettings applies the patch. A rename regenerates the slug; the
// returned flag tells whether it changed.
func (s *Service) UpdateProjectSettings(projectID string, patch ProjectPatch) (*model.Project, bool, error) {
	p, err := s.store.GetProjectByID(projectID)
	if err != nil {
		return nil, false, err
	}
	name := p.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, false, fmt.Errorf("%w: project name is required", ErrInvalidInput)
		}
	}
	view := p.DefaultView
	if patch.DefaultView != nil {
		v, err := defaultView(*patch.DefaultView)
		if err != nil {
			return nil, false, err
		}
		view = string(v)
	}
	if patch.LeadID != nil && *patch.LeadID != "" {
		if _, err := s.store.GetUserByID(*patch.LeadID); err != nil {
			return nil, false, err
		}
	}

	slugChanged := false
	if name != p.Name {
		p.Name = name
		if slug := s.store.UniqueSlug(name, p.ID); slug != p.Slug {
			p.Slug = slug
			slugChanged = true
		}
	}
	if patch.Identifier != nil && strings.TrimSpace(*patch.Identifier) != "" {
		p.Identifier = strings.ToUpper(strings.TrimSpace(*patch.Identifier))
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.LeadID != nil {
		p.LeadID = nil
		if *patch.LeadID != "" {
			p.LeadID = model.StringPtr(*patch.LeadID)
		}
	}
	p.DefaultView = view
	s.store.TouchProject(p)
	return p, slugChanged, nil
}

func (s *Service) ToggleProjectArchive(projectID string) (*model.Project, error) {
	p, err := s.store.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	p.IsArchived = !p.IsArchived
	s.store.TouchProject(p)
	return p, nil
}

func (s *Service) ToggleProjectFavorite(projectID string) (*model.Project, error) {
	p, err := s.store.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	p.IsFavorite = !p.IsFavorite
	s.store.TouchProject(p)
	return p, nil
}

// DeleteProject requires the confirmation to equal the project name exactly.
func (s *Service) DeleteProject(projectID, confirmation string) error {
	p, err := s.store.GetProjectByID(projectID)
	if err != nil {
		return err
	}
	if confirmation != p.Name {
		return ErrConfirmationMismatch
	}
	return s.store.DeleteProject(p.ID)
}

func defaultView(v string) (viewstate.Tab, error) {
	if v == "" {
		return viewstate.TabList, nil
	}
	tab, err := viewstate.ParseTab(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return tab, nil
}

// deriveIdentifier takes the initials of a multi-word name, or the first
// three letters of a single word.
func deriveIdentifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	var initials []rune
	if len(words) > 1 {
		for _, w := range words {
			initials = append(initials, []rune(w)[0])
			if len(initials) == 4 {
				break
			}
		}
	} else if len(words) == 1 {
		initials = []rune(words[0])
		if len(initials) > 3 {
			initials = initials[:3]
		}
	}
	if len(initials) == 0 {
		return "PRJ"
	}
	return strings.ToUpper(string(initials))
}
