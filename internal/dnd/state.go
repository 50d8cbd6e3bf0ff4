package dnd

import (
	"errors"

	"planboard/internal/bucket"
)

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("a drag is already in progress")
)

// Side tells whether a drop lands above or below the hovered task.
type Side int

const (
	Above Side = iota
	Below
)

func (s Side) String() string {
	if s == Below {
		return "below"
	}
	return "above"
}

func ParseSide(s string) Side {
	if s == "below" {
		return Below
	}
	return Above
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SideOf compares the pointer with the vertical midpoint of the target's box.
func SideOf(pointerY, top, height float64) Side {
	if pointerY > top+height/2 {
		return Below
	}
	return Above
}

// State is Idle or Dragging.
type State interface {
	isState()
}

type Idle struct{}

// Dragging carries everything captured at pointer-down. Indicator is the
// transient drop hint and never affects data.
type Dragging struct {
	TaskID    string
	Source    bucket.Snapshot
	Indicator *Indicator
}

type Indicator struct {
	TargetID string `json:"target_id"`
	Side     Side   `json:"side"`
}

func (Idle) isState()     {}
func (Dragging) isState() {}
