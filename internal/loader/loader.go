package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"planboard/internal/model"
)

// Collection names understood by LoadCollections.
const (
	CollectionWorkspace  = "workspace"
	CollectionProjects   = "projects"
	CollectionTasks      = "tasks"
	CollectionStatuses   = "statuses"
	CollectionUsers      = "users"
	CollectionPriorities = "priorities"
	CollectionLabels     = "labels"
	CollectionFiles      = "files"
)

// Loader fetches the raw JSON of a named collection.
type Loader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// DirLoader reads <Dir>/<name>.json.
type DirLoader struct {
	Dir string
}

func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

func (l *DirLoader) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(l.Dir, name+".json"))
}

// Collections is everything the workspace starts from. Absent collections are empty, never nil.
type Collections struct {
	Workspace  model.Workspace
	Projects   []*model.Project
	Tasks      []*model.Task
	Statuses   []*model.Status
	Users      []*model.User
	Priorities []*model.Priority
	Labels     []*model.Label
	Files      []*model.File
}

// LoadCollections loads every collection independently. A failing collection is
// logged and left empty; it never aborts the others.
func LoadCollections(ctx context.Context, l Loader) *Collections {
	c := &Collections{}

	loadInto(ctx, l, CollectionWorkspace, &c.Workspace)
	c.Projects = loadSlice[model.Project](ctx, l, CollectionProjects)
	c.Tasks = loadSlice[model.Task](ctx, l, CollectionTasks)
	c.Statuses = loadSlice[model.Status](ctx, l, CollectionStatuses)
	c.Users = loadSlice[model.User](ctx, l, CollectionUsers)
	c.Priorities = loadSlice[model.Priority](ctx, l, CollectionPriorities)
	c.Labels = loadSlice[model.Label](ctx, l, CollectionLabels)
	c.Files = loadSlice[model.File](ctx, l, CollectionFiles)

	normalize(c)
	return c
}

func loadSlice[T any](ctx context.Context, l Loader, name string) []*T {
	var items []*T
	if !loadInto(ctx, l, name, &items) {
		return []*T{}
	}
	out := items[:0]
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

func loadInto(ctx context.Context, l Loader, name string, dst any) bool {
	raw, err := l.Load(ctx, name)
	if err == nil {
		err = decode(raw, name, dst)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"collection": name}).Warnf("load failed, using empty collection: %v", err)
		return false
	}
	return true
}

// decode accepts either the bare value or an object wrapping it under the
// collection name, e.g. {"tasks": [...]}.
func decode(raw []byte, name string, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("collection %s is empty", name)
	}
	if err := json.Unmarshal(raw, dst); err == nil {
		return nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	inner, ok := wrapped[name]
	if !ok {
		return fmt.Errorf("decode %s: unexpected document shape", name)
	}
	if err := json.Unmarshal(inner, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// normalize fills derived and defaulted fields that raw JSON may omit.
func normalize(c *Collections) {
	for _, s := range c.Statuses {
		if !s.Category.Valid() {
			s.Category = model.CategoryTodo
		}
	}
	for _, t := range c.Tasks {
		if t.LabelIDs == nil {
			t.LabelIDs = []string{}
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
	}
	for _, p := range c.Projects {
		if p.MemberIDs == nil {
			p.MemberIDs = []string{}
		}
	}
	for _, f := range c.Files {
		if f.FileType == "" {
			f.FileType = model.FileTypeOf(f.Name)
		}
	}
}
