// Package shell holds the presentation state of the simulator: the three
// inputs, guarded text entry, presets and the control panel view model.
package shell

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
)

// Field names one of the three inputs.
type Field string

const (
	FieldN1    Field = "n1"
	FieldN2    Field = "n2"
	FieldAngle Field = "angle"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrOutOfRange    = errors.New("value out of range")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownPreset = errors.New("unknown preset")
)

// Bounds returns the control range of a field.
func (f Field) Bounds() (lo, hi float64, err error) {
	switch f {
	case FieldN1, FieldN2:
		return optics.MinIndex, optics.MaxIndex, nil
	case FieldAngle:
		return optics.MinAngle, optics.MaxAngle, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

type observer struct {
	id int
	fn func(render.Inputs)
}

// State is the explicit owner of the inputs. Setters clamp to the control
// range; observers run after each change on the setting goroutine.
type State struct {
	mu        sync.Mutex
	in        render.Inputs
	nextID    int
	observers []observer
}

// NewState starts from glass over air at 30°.
func NewState() *State {
	return NewStateWith(render.Inputs{
		N1:    optics.DefaultN1,
		N2:    optics.DefaultN2,
		Angle: optics.DefaultAngle,
	})
}

func NewStateWith(in render.Inputs) *State {
	return &State{in: in}
}

// Snapshot returns the three inputs as one consistent value.
func (s *State) Snapshot() render.Inputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in
}

// SetN1 clamps v to the index range. Like the other setters it ignores NaN.
func (s *State) SetN1(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.update(func(in *render.Inputs) { in.N1 = clampIndex(v) })
}

func (s *State) SetN2(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.update(func(in *render.Inputs) { in.N2 = clampIndex(v) })
}

func (s *State) SetAngle(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.update(func(in *render.Inputs) { in.Angle = optics.Clamp(v, optics.MinAngle, optics.MaxAngle) })
}

// Set assigns a field by name.
func (s *State) Set(f Field, v float64) error {
	switch f {
	case FieldN1:
		s.SetN1(v)
	case FieldN2:
		s.SetN2(v)
	case FieldAngle:
		s.SetAngle(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return nil
}

// OnChange registers fn to receive the inputs after every change.
func (s *State) OnChange(fn func(render.Inputs)) (off func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *State) update(apply func(*render.Inputs)) {
	s.mu.Lock()
	before := s.in
	apply(&s.in)
	after := s.in
	obs := append([]observer(nil), s.observers...)
	s.mu.Unlock()

	if after == before {
		return
	}
	for _, o := range obs {
		o.fn(after)
	}
}

func clampIndex(v float64) float64 {
	return optics.Clamp(v, optics.MinIndex, optics.MaxIndex)
}
