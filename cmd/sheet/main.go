package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
)

type config struct {
	n1, n2       *float64
	from, to     *float64
	grid         *string
	tileW, tileH *int
	dpr          *float64
	workers      *int
	out          *string
}

func defineFlags() config {
	return config{
		n1:      flag.Float64("n1", optics.DefaultN1, "Refractive index of the upper medium"),
		n2:      flag.Float64("n2", optics.DefaultN2, "Refractive index of the lower medium"),
		from:    flag.Float64("from", optics.MinAngle, "First incident angle in degrees"),
		to:      flag.Float64("to", optics.MaxAngle, "Last incident angle in degrees"),
		grid:    flag.String("grid", "4x3", "Sheet layout as <cols>x<rows>"),
		tileW:   flag.Int("tile-width", 320, "Tile width in logical pixels"),
		tileH:   flag.Int("tile-height", 240, "Tile height in logical pixels"),
		dpr:     flag.Float64("dpr", 1, "Device pixel ratio of each tile"),
		workers: flag.Int("workers", runtime.GOMAXPROCS(0), "Tiles rendered in parallel"),
		out:     flag.String("out", "sheet.png", "Output image path (.png, .jpg or .tif)"),
	}
}

func main() {
	cfg := defineFlags()
	flag.Parse()

	cols, rows, err := parseGrid(*cfg.grid)
	if err != nil {
		log.Fatalf("Invalid grid: %v", err)
	}

	angles := sweep(*cfg.from, *cfg.to, cols*rows)
	tiles, err := renderTiles(context.Background(), *cfg.n1, *cfg.n2, angles, *cfg.tileW, *cfg.tileH, *cfg.dpr, *cfg.workers)
	if err != nil {
		log.Fatalf("Failed to render tiles: %v", err)
	}

	sheet, err := merge(tiles, cols, rows)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("-> creating %s\n", *cfg.out)
	if err := render.WriteFile(*cfg.out, sheet); err != nil {
		log.Fatalf("Could not write %s: %v", *cfg.out, err)
	}
}

func parseGrid(s string) (int, int, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q (expected NxM)", s)
	}
	cols, err := strconv.Atoi(parts[0])
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("invalid cols %q", parts[0])
	}
	rows, err := strconv.Atoi(parts[1])
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid rows %q", parts[1])
	}
	return cols, rows, nil
}

// sweep spreads n angles evenly over [from, to], clamped to the control range.
func sweep(from, to float64, n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		angles[i] = optics.Clamp(optics.Lerp(from, to, t), optics.MinAngle, optics.MaxAngle)
	}
	return angles
}

// renderTiles renders one frame per angle, at most workers at a time. Each
// worker owns its renderer.
func renderTiles(ctx context.Context, n1, n2 float64, angles []float64, w, h int, dpr float64, workers int) ([]*image.RGBA, error) {
	tiles := make([]*image.RGBA, len(angles))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, angle := range angles {
		i, angle := i, angle
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := render.NewSurface(render.Rect{Width: float64(w), Height: float64(h)}, dpr)
			if !s.Attached() {
				return fmt.Errorf("empty tile %dx%d", w, h)
			}
			r := render.NewRenderer(render.DefaultTheme(), nil)
			defer r.Close()
			r.Draw(s, render.Inputs{N1: n1, N2: n2, Angle: angle})
			tiles[i] = s.Image()
			fmt.Printf("Rendered θ1 = %.1f°\n", angle)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

// merge tiles the images row by row into one sheet.
func merge(tiles []*image.RGBA, cols, rows int) (*image.NRGBA, error) {
	if len(tiles) != cols*rows {
		return nil, fmt.Errorf("expected %d tiles, got %d", cols*rows, len(tiles))
	}
	tileW := tiles[0].Bounds().Dx()
	tileH := tiles[0].Bounds().Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))

	for idx, tile := range tiles {
		if tile.Bounds().Dx() != tileW || tile.Bounds().Dy() != tileH {
			return nil, fmt.Errorf("tile %d size mismatch: expected %dx%d, got %dx%d",
				idx, tileW, tileH, tile.Bounds().Dx(), tile.Bounds().Dy())
		}
		col := idx % cols
		row := idx / cols
		x := col * tileW
		y := row * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, image.Point{0, 0}, draw.Over)
	}
	return canvas, nil
}
