package interact

import (
	"reflect"
	"testing"
)

func TestDispatcherOrderAndOff(t *testing.T) {
	d := NewDispatcher()
	var got []string
	offA := d.On(PointerDown, func(Event) { got = append(got, "a") })
	d.On(PointerDown, func(Event) { got = append(got, "b") })
	d.On(PointerUp, func(Event) { got = append(got, "up") })

	d.Dispatch(Event{Kind: PointerDown})
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	offA()
	offA()
	got = nil
	d.Dispatch(Event{Kind: PointerDown})
	d.Dispatch(Event{Kind: PointerMove})
	if want := []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after off got %v, want %v", got, want)
	}
	if d.Len(PointerDown) != 1 || d.Len(PointerUp) != 1 || d.Len(Resize) != 0 {
		t.Fatal("unexpected handler counts")
	}
}

func TestDispatcherHandlerMayUnregister(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var off func()
	off = d.On(Resize, func(Event) {
		calls++
		off()
	})
	d.Dispatch(Event{Kind: Resize})
	d.Dispatch(Event{Kind: Resize})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestEventKindString(t *testing.T) {
	for k, want := range map[EventKind]string{
		PointerDown:   "pointerdown",
		PointerMove:   "pointermove",
		PointerUp:     "pointerup",
		Resize:        "resize",
		EventKind(42): "unknown",
	} {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), want)
		}
	}
}
