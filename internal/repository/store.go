package repository

import (
	"time"

	"github.com/google/uuid"

	"planboard/internal/loader"
	"planboard/internal/model"
)

// Store is the in-memory entity store. Every mutation is visible immediately and
// there are no transactions; callers keep invariants (see package workspace).
// Store is not safe for concurrent use.
type Store struct {
	workspace  model.Workspace
	projects   []*model.Project
	tasks      []*model.Task
	statuses   []*model.Status
	priorities []*model.Priority
	labels     []*model.Label
	users      []*model.User
	files      []*model.File

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how ids of created entities are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(c *loader.Collections, opts ...Option) *Store {
	if c == nil {
		c = &loader.Collections{}
	}
	s := &Store{
		workspace:  c.Workspace,
		projects:   append([]*model.Project{}, c.Projects...),
		tasks:      append([]*model.Task{}, c.Tasks...),
		statuses:   append([]*model.Status{}, c.Statuses...),
		priorities: append([]*model.Priority{}, c.Priorities...),
		labels:     append([]*model.Label{}, c.Labels...),
		users:      append([]*model.User{}, c.Users...),
		files:      append([]*model.File{}, c.Files...),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.densify()
	return s
}

// densify renumbers every loaded (project, status) bucket to 1..N. Loaded
// timestamps are kept.
func (s *Store) densify() {
	for _, st := range s.statuses {
		for i, t := range s.GetStatusBucket(st.ProjectID, st.ID) {
			t.SortOrder = i + 1
		}
	}
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) NewID() string {
	return s.newID()
}

func (s *Store) Workspace() model.Workspace {
	return s.workspace
}
