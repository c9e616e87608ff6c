package interact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFPS is the refresh rate used when none is configured.
const DefaultFPS = 60

var ErrLoopStopped = errors.New("frame loop stopped")

// FrameFunc is called once per refresh with the refresh time.
type FrameFunc func(now time.Time)

type frameCallback struct {
	fn        FrameFunc
	cancelled atomic.Bool
}

// FrameLoop runs registered callbacks once per display refresh on a single
// goroutine. Work posted with Post runs on the same goroutine between
// refreshes, so callbacks and posted work never overlap.
type FrameLoop struct {
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	callbacks []*frameCallback

	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
	frames   atomic.Uint64
	panics   atomic.Uint64
}

func NewFrameLoop(fps int, logger *slog.Logger) *FrameLoop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FrameLoop{
		interval: time.Second / time.Duration(fps),
		logger:   logger,
		tasks:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func (l *FrameLoop) Interval() time.Duration { return l.interval }

// Frames is the number of refreshes run so far.
func (l *FrameLoop) Frames() uint64 { return l.frames.Load() }

// Panics is the number of callbacks that panicked.
func (l *FrameLoop) Panics() uint64 { return l.panics.Load() }

// Request registers fn to run on every refresh until cancel is called.
func (l *FrameLoop) Request(fn FrameFunc) (cancel func()) {
	cb := &frameCallback{fn: fn}
	l.mu.Lock()
	l.callbacks = append(l.callbacks, cb)
	l.mu.Unlock()

	return func() {
		cb.cancelled.Store(true)
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, c := range l.callbacks {
			if c == cb {
				l.callbacks = append(l.callbacks[:i:i], l.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Pending is the number of registered callbacks.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callbacks)
}

// Post queues fn to run on the loop goroutine. It fails once the loop has
// stopped or ctx is done.
func (l *FrameLoop) Post(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick runs queued work and then one refresh. Hosts that own the refresh
// call it directly instead of Run.
func (l *FrameLoop) Tick(now time.Time) {
	l.drain()

	l.mu.Lock()
	cbs := append([]*frameCallback(nil), l.callbacks...)
	l.mu.Unlock()

	for _, cb := range cbs {
		if cb.cancelled.Load() {
			continue
		}
		l.safely("frame callback", func() { cb.fn(now) })
	}
	l.frames.Add(1)
}

// Run drives the loop from a ticker until ctx is done.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.stopOnce.Do(func() { close(l.done) })

	l.logger.Debug("frame loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped", "frames", l.Frames())
			return ctx.Err()
		case fn := <-l.tasks:
			l.safely("posted task", fn)
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}

func (l *FrameLoop) drain() {
	for {
		select {
		case fn := <-l.tasks:
			l.safely("posted task", fn)
		default:
			return
		}
	}
}

func (l *FrameLoop) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			l.logger.Error("recovered from panic", "in", what, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
