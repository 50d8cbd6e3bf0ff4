package render

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrStaleGeneration = errors.New("event targets a superseded render")
	ErrUnknownListener = errors.New("unknown listener")
)

// Event is a user gesture reported against a bound listener.
type Event struct {
	Value      string   `json:"value"`
	Values     []string `json:"values"`
	TargetID   string   `json:"target_id"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Top        float64  `json:"top"`
	Height     float64  `json:"height"`
	TrackWidth float64  `json:"track_width"`
	Mode       string   `json:"mode"`
}

type Handler func(ctx context.Context, ev Event) error

// Binding is the client-visible half of a listener. Quiet listeners update
// transient state only and do not trigger a render.
type Binding struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Target string `json:"target"`
	Quiet  bool   `json:"quiet,omitempty"`
}

type listener struct {
	Binding
	handler Handler
}

// Scope owns every listener bound by the current render. Invalidate revokes
// all of them at once and starts a new generation; listeners are never
// removed one by one.
type Scope struct {
	generation uint64
	token      context.Context
	revoke     context.CancelFunc
	listeners  map[string]*listener
	order      []string
}

func NewScope() *Scope {
	s := &Scope{}
	s.token, s.revoke = context.WithCancel(context.Background())
	s.listeners = map[string]*listener{}
	return s
}

func (s *Scope) Generation() uint64 {
	return s.generation
}

// Token is cancelled when the current generation is invalidated.
func (s *Scope) Token() context.Context {
	return s.token
}

func (s *Scope) Invalidate() {
	s.revoke()
	s.generation++
	s.token, s.revoke = context.WithCancel(context.Background())
	s.listeners = map[string]*listener{}
	s.order = nil
}

func (s *Scope) Bind(typ, target string, h Handler) Binding {
	return s.bind(typ, target, false, h)
}

func (s *Scope) BindQuiet(typ, target string, h Handler) Binding {
	return s.bind(typ, target, true, h)
}

func (s *Scope) bind(typ, target string, quiet bool, h Handler) Binding {
	b := Binding{
		ID:     fmt.Sprintf("%d.%d", s.generation, len(s.order)+1),
		Type:   typ,
		Target: target,
		Quiet:  quiet,
	}
	s.listeners[b.ID] = &listener{Binding: b, handler: h}
	s.order = append(s.order, b.ID)
	return b
}

func (s *Scope) Len() int {
	return len(s.listeners)
}

// Bindings lists the live listeners in bind order.
func (s *Scope) Bindings() []Binding {
	out := make([]Binding, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id].Binding)
	}
	return out
}

// Dispatch runs the listener id bound under generation.
func (s *Scope) Dispatch(ctx context.Context, generation uint64, id string, ev Event) (Binding, error) {
	if generation != s.generation {
		return Binding{}, ErrStaleGeneration
	}
	l, ok := s.listeners[id]
	if !ok {
		return Binding{}, fmt.Errorf("%w %q", ErrUnknownListener, id)
	}
	if err := s.token.Err(); err != nil {
		return l.Binding, ErrStaleGeneration
	}
	return l.Binding, l.handler(ctx, ev)
}
