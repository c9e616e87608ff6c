package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/echoflaresat/lux/interact"
	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/shell"
)

// Game hosts the scene in a native window. The window's update loop drives
// the frame loop, so every handler runs on the same goroutine.
type Game struct {
	state      *shell.State
	dispatcher *interact.Dispatcher
	loop       *interact.FrameLoop
	renderer   *render.Renderer
	view       *interact.View

	outsideW, outsideH int
	dpr                float64
	showPanel          bool
}

func NewGame(logger *slog.Logger) *Game {
	g := &Game{
		state:      shell.NewState(),
		dispatcher: interact.NewDispatcher(),
		loop:       interact.NewFrameLoop(ebiten.TPS(), logger),
		renderer:   render.NewRenderer(render.DefaultTheme(), logger),
		showPanel:  true,
	}
	g.view = interact.NewView(interact.ViewConfig{
		Dispatcher: g.dispatcher,
		Loop:       g.loop,
		Renderer:   g.renderer,
		Source:     g.state,
		OnAngle:    g.state.SetAngle,
		Logger:     logger,
	})
	g.view.Mount(render.Rect{}, 1)
	return g
}

func (g *Game) Close() {
	g.view.Unmount()
	g.renderer.Close()
}

var n1Keys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
var n2Keys = []ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR}

func (g *Game) Update() error {
	g.handlePointer()
	g.handleKeys()
	g.loop.Tick(time.Now())
	return nil
}

// handlePointer turns mouse state into pointer events in window (client)
// coordinates.
func (g *Game) handlePointer() {
	cx, cy := ebiten.CursorPosition()
	x := float64(cx) / g.scale()
	y := float64(cy) / g.scale()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dispatcher.Dispatch(interact.Event{Kind: interact.PointerDown, X: x, Y: y})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dispatcher.Dispatch(interact.Event{Kind: interact.PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dispatcher.Dispatch(interact.Event{Kind: interact.PointerUp, X: x, Y: y})
	}
}

func (g *Game) handleKeys() {
	in := g.state.Snapshot()
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.state.SetAngle(in.Angle - optics.AngleStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.state.SetAngle(in.Angle + optics.AngleStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.state.SetN1(in.N1 + optics.IndexStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.state.SetN1(in.N1 - optics.IndexStep)
	}
	for i, m := range optics.Presets {
		if inpututil.IsKeyJustPressed(n1Keys[i]) {
			g.state.SetN1(m.Index)
		}
		if inpututil.IsKeyJustPressed(n2Keys[i]) {
			g.state.SetN2(m.Index)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showPanel = !g.showPanel
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.view.Surface()
	if !s.Attached() {
		return
	}
	w, h := s.BackingSize()
	if b := screen.Bounds(); b.Dx() == w && b.Dy() == h {
		screen.WritePixels(s.Image().Pix)
	}
	if g.showPanel {
		ebitenutil.DebugPrintAt(screen, panelText(g.state.Snapshot()), 10, h-110)
	}
}

// Layout renders at the backing resolution and reports container size
// changes as resize events.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || dpr != g.dpr {
		g.outsideW, g.outsideH, g.dpr = outsideWidth, outsideHeight, dpr
		g.dispatcher.Dispatch(interact.Event{
			Kind: interact.Resize,
			Rect: render.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)},
			DPR:  dpr,
		})
	}
	return int(math.Round(float64(outsideWidth) * g.scale())), int(math.Round(float64(outsideHeight) * g.scale()))
}

func (g *Game) scale() float64 {
	if g.dpr <= 0 {
		return 1
	}
	return g.dpr
}

func panelText(in render.Inputs) string {
	p := shell.Panel(in)
	var b strings.Builder
	fmt.Fprintf(&b, "n1 %s %-8s [1-4 presets, up/down]\n", p.N1.Text, p.N1.Medium)
	fmt.Fprintf(&b, "n2 %s %-8s [Q/W/E/R presets]\n", p.N2.Text, p.N2.Medium)
	fmt.Fprintf(&b, "angle %s [left/right or drag]\n", p.AngleLabel)
	if p.CriticalAngle != "" {
		fmt.Fprintf(&b, "critical angle %s\n", p.CriticalAngle)
	}
	if p.TIR {
		b.WriteString(p.Warning + "\n")
	}
	b.WriteString(p.SnellsLaw)
	return b.String()
}

func main() {
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	debug := flag.Bool("debug", false, "Log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Light Refraction Simulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(logger)
	defer game.Close()
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Window closed with error: %v", err)
	}
}
