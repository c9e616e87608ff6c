// Package interact turns pointer and resize events into incident angle
// updates and schedules redraws of the scene.
package interact

import (
	"sync"

	"github.com/echoflaresat/lux/render"
)

// EventKind identifies a host event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case Resize:
		return "resize"
	}
	return "unknown"
}

// Event is a host event. Pointer coordinates are client coordinates. Resize
// events carry the new displayed rect of the surface and the pixel ratio.
type Event struct {
	Kind EventKind
	X, Y float64
	Rect render.Rect
	DPR  float64
}

type Handler func(Event)

type registration struct {
	id int
	fn Handler
}

// Dispatcher fans host events out to registered handlers in registration
// order. It is safe for concurrent use; handlers run on the dispatching
// goroutine.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   int
	handlers map[EventKind][]registration
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]registration)}
}

// On registers fn for kind. The returned func removes it again and may be
// called more than once.
func (d *Dispatcher) On(kind EventKind, fn Handler) (off func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], registration{id: id, fn: fn})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		regs := d.handlers[kind]
		for i, r := range regs {
			if r.id == id {
				d.handlers[kind] = append(regs[:i:i], regs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every handler registered for its kind.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	regs := append([]registration(nil), d.handlers[ev.Kind]...)
	d.mu.Unlock()

	for _, r := range regs {
		r.fn(ev)
	}
}

// Len is the number of handlers registered for kind.
func (d *Dispatcher) Len(kind EventKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[kind])
}
