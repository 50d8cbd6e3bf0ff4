package render

import (
	"context"
	"fmt"
	"strings"
)

type OverlayKind string

const (
	Dropdown    OverlayKind = "dropdown"
	DatePicker  OverlayKind = "datepicker"
	ColorPicker OverlayKind = "colorpicker"
)

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Overlay is a popup living outside the view's listener scope. Each one has
// its own select and outside-click listeners and is removed on its own.
type Overlay struct {
	ID              string      `json:"id"`
	Kind            OverlayKind `json:"kind"`
	Target          string      `json:"target"`
	Options         []Choice    `json:"options,omitempty"`
	SelectListener  string      `json:"select_listener"`
	OutsideListener string      `json:"outside_listener"`

	onSelect func(ctx context.Context, value string) error
}

type Overlays struct {
	seq   int
	open  map[string]*Overlay
	order []string
}

func NewOverlays() *Overlays {
	return &Overlays{open: map[string]*Overlay{}}
}

func (o *Overlays) Open(kind OverlayKind, target string, options []Choice, onSelect func(ctx context.Context, value string) error) Overlay {
	o.seq++
	id := fmt.Sprintf("overlay-%d", o.seq)
	ov := &Overlay{
		ID:              id,
		Kind:            kind,
		Target:          target,
		Options:         options,
		SelectListener:  id + ":select",
		OutsideListener: id + ":outside",
		onSelect:        onSelect,
	}
	o.open[id] = ov
	o.order = append(o.order, id)
	return *ov
}

// Dismiss tears down one overlay and its listeners.
func (o *Overlays) Dismiss(id string) bool {
	if _, ok := o.open[id]; !ok {
		return false
	}
	delete(o.open, id)
	for i, oid := range o.order {
		if oid == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

// DismissAll tears down every open overlay, one at a time, newest first.
func (o *Overlays) DismissAll() int {
	n := 0
	for len(o.order) > 0 {
		if o.Dismiss(o.order[len(o.order)-1]) {
			n++
		}
	}
	return n
}

// Escape dismisses the most recently opened overlay.
func (o *Overlays) Escape() bool {
	if len(o.order) == 0 {
		return false
	}
	return o.Dismiss(o.order[len(o.order)-1])
}

func (o *Overlays) Len() int {
	return len(o.open)
}

func (o *Overlays) List() []Overlay {
	out := make([]Overlay, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, *o.open[id])
	}
	return out
}

// Owns reports whether the listener id belongs to an overlay.
func (o *Overlays) Owns(listenerID string) bool {
	id, _, ok := strings.Cut(listenerID, ":")
	if !ok {
		return false
	}
	_, open := o.open[id]
	return open
}

// Dispatch handles an overlay listener. changed reports whether a selection
// was applied and the view needs a render.
func (o *Overlays) Dispatch(ctx context.Context, listenerID string, ev Event) (changed bool, err error) {
	id, action, _ := strings.Cut(listenerID, ":")
	ov, ok := o.open[id]
	if !ok {
		return false, fmt.Errorf("%w %q", ErrUnknownListener, listenerID)
	}
	switch action {
	case "outside":
		o.Dismiss(id)
		return false, nil
	case "select":
		o.Dismiss(id)
		return true, ov.onSelect(ctx, ev.Value)
	}
	return false, fmt.Errorf("%w %q", ErrUnknownListener, listenerID)
}
