// Package service implements the workspace operations that must keep the
// entity store consistent: ordering density, sequence numbers, cascades and
// the confirmation rules. It performs no locking.
package service

import (
	"planboard/internal/dnd"
	"planboard/internal/repository"
)

type Service struct {
	store *repository.Store
	moves *dnd.Engine
}

func New(store *repository.Store) *Service {
	return &Service{store: store, moves: dnd.NewEngine(store)}
}

func (s *Service) Store() *repository.Store {
	return s.store
}
