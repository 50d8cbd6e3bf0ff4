package service

import (
	"fmt"
	"strings"

	"planboard/internal/model"
)

const defaultLabelColor = "#8b5cf6"

func (s *Service) CreateLabel(projectID, name, color string) (*model.Label, error) {
	if _, err := s.store.GetProjectByID(projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: label name is required", ErrInvalidInput)
	}
	if color == "" {
		color = defaultLabelColor
	}
	l := &model.Label{ProjectID: projectID, Name: name, Color: color}
	s.store.CreateLabel(l)
	return l, nil
}

// DeleteLabel removes the label and detaches it from every task.
func (s *Service) DeleteLabel(labelID string) error {
	return s.store.DeleteLabel(labelID)
}

// DeleteFiles removes the listed files. Unknown ids are skipped; the number
// of deleted files is returned.
func (s *Service) DeleteFiles(ids []string) int {
	n := 0
	for _, id := range ids {
		if err := s.store.DeleteFile(id); err == nil {
			n++
		}
	}
	return n
}
