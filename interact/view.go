package interact

import (
	"log/slog"
	"time"

	"github.com/echoflaresat/lux/render"
)

// Source supplies a consistent snapshot of the inputs for each frame.
type Source interface {
	Snapshot() render.Inputs
}

// ViewConfig wires a View to its collaborators. OnAngle receives angles from
// drags; OnDraw, when set, runs after each frame is painted with the inputs
// that frame shows.
type ViewConfig struct {
	Surface    *render.Surface
	Renderer   *render.Renderer
	Dispatcher *Dispatcher
	Loop       *FrameLoop
	Source     Source
	OnAngle    func(float64)
	OnDraw     func(*render.Surface, render.Inputs)
	Logger     *slog.Logger
}

// View is the mounted scene: a surface kept in step with its container, a
// drag controller and a redraw on every refresh.
type View struct {
	cfg        ViewConfig
	controller *Controller
	offs       []func()
	mounted    bool
	drawCount  int
}

func NewView(cfg ViewConfig) *View {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Surface == nil {
		cfg.Surface = &render.Surface{}
	}
	v := &View{cfg: cfg}
	v.controller = NewController(cfg.Surface, v.angle)
	return v
}

func (v *View) Surface() *render.Surface { return v.cfg.Surface }

func (v *View) Controller() *Controller { return v.controller }

func (v *View) Mounted() bool { return v.mounted }

// Draws is the number of frames painted since mounting.
func (v *View) Draws() int { return v.drawCount }

// Mount sizes the surface to its displayed rect and starts listening for
// events and refreshes. Mounting twice is a no-op.
func (v *View) Mount(rect render.Rect, dpr float64) {
	if v.mounted {
		return
	}
	v.mounted = true
	v.drawCount = 0
	v.cfg.Surface.Resize(rect, dpr)

	d := v.cfg.Dispatcher
	v.offs = append(v.offs,
		d.On(Resize, func(ev Event) { v.cfg.Surface.Resize(ev.Rect, ev.DPR) }),
		d.On(PointerDown, func(ev Event) { v.controller.PointerDown(ev.X, ev.Y) }),
		d.On(PointerMove, func(ev Event) { v.controller.PointerMove(ev.X, ev.Y) }),
		d.On(PointerUp, func(Event) { v.controller.PointerUp() }),
		v.cfg.Loop.Request(v.frame),
	)
	w, h := v.cfg.Surface.BackingSize()
	v.cfg.Logger.Debug("view mounted", "width", w, "height", h, "dpr", v.cfg.Surface.DPR())
}

// Unmount removes every handler and the frame callback and detaches the
// surface.
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	for _, off := range v.offs {
		off()
	}
	v.offs = nil
	v.controller.PointerUp()
	v.cfg.Surface.Detach()
	v.mounted = false
	v.cfg.Logger.Debug("view unmounted", "draws", v.drawCount)
}

func (v *View) angle(a float64) {
	if v.mounted && v.cfg.OnAngle != nil {
		v.cfg.OnAngle(a)
	}
}

// frame paints the current snapshot. It runs on every refresh while mounted.
func (v *View) frame(time.Time) {
	s := v.cfg.Surface
	if !s.Attached() {
		return
	}
	in := v.cfg.Source.Snapshot()
	v.cfg.Renderer.Draw(s, in)
	v.drawCount++
	if v.cfg.OnDraw != nil {
		v.cfg.OnDraw(s, in)
	}
}
