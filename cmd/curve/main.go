package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/echoflaresat/lux/optics"
)

type config struct {
	n1, n2   *float64
	step     *float64
	width    *int
	height   *int
	plotPath *string
	showHelp *bool
}

func defineFlags() config {
	return config{
		n1:       flag.Float64("n1", optics.DefaultN1, "Refractive index of the upper medium"),
		n2:       flag.Float64("n2", optics.DefaultN2, "Refractive index of the lower medium"),
		step:     flag.Float64("step", 10, "Table step in degrees"),
		width:    flag.Int("width", 60, "Terminal chart width"),
		height:   flag.Int("height", 12, "Terminal chart height"),
		plotPath: flag.String("plot", "", "Also save the curve as a PNG plot to this path"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Lux Curve - Refracted Angle Against Incident Angle

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Media", []string{"n1", "n2"})
	printGroup("Output", []string{"step", "width", "height", "plot"})
	printGroup("Misc", []string{"h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}
	if *cfg.step <= 0 {
		log.Fatalf("Invalid step: %v", *cfg.step)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("n1 = %.2f (%s)  ->  n2 = %.2f (%s)",
		*cfg.n1, optics.MediumName(*cfg.n1), *cfg.n2, optics.MediumName(*cfg.n2))))
	fmt.Println(renderTable(tabulate(*cfg.n1, *cfg.n2, *cfg.step)))

	fine := tabulate(*cfg.n1, *cfg.n2, optics.AngleStep)
	fmt.Println(graphStyle.Render(chart(fine, *cfg.width, *cfg.height)))

	if *cfg.plotPath != "" {
		if err := savePlot(fine, *cfg.n1, *cfg.n2, *cfg.plotPath); err != nil {
			log.Fatalf("Failed to save plot: %v", err)
		}
		fmt.Printf("-> creating %s\n", *cfg.plotPath)
	}
}

// sample is one row of the curve.
type sample struct {
	incident  float64
	result    optics.Result
	reflected float64
}

// tabulate evaluates the interface from 0° up to the largest control angle in
// steps of step degrees. The last control angle is always included.
func tabulate(n1, n2, step float64) []sample {
	var out []sample
	add := func(a float64) {
		out = append(out, sample{incident: a, result: optics.Refract(n1, n2, a), reflected: optics.ReflectedAngle(a)})
	}
	n := int(math.Floor(optics.MaxAngle/step + 1e-9))
	for i := 0; i <= n; i++ {
		add(float64(i) * step)
	}
	if last := out[len(out)-1].incident; math.Abs(last-optics.MaxAngle) > 1e-9 {
		add(optics.MaxAngle)
	}
	return out
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func renderTable(samples []sample) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("θ1", "θ2", "outcome")
	for _, s := range samples {
		theta2, outcome := "-", "reflected"
		if s.result.RefractedAngle != nil {
			theta2, outcome = fmt.Sprintf("%.2f°", *s.result.RefractedAngle), "refracted"
		}
		t.Row(fmt.Sprintf("%.1f°", s.incident), theta2, outcome)
	}
	return t.String()
}

// chart plots θ2 over the angles that refract. Under total internal
// reflection the chart stops at the critical angle.
func chart(samples []sample, width, height int) string {
	var ys []float64
	for _, s := range samples {
		if s.result.RefractedAngle == nil {
			break
		}
		ys = append(ys, *s.result.RefractedAngle)
	}
	caption := "θ2 against θ1"
	if c := samples[0].result.CriticalAngle; c != nil {
		caption += fmt.Sprintf(", critical angle %.1f°", *c)
	}
	if len(ys) < 2 {
		return caption + ": too few refracted angles to chart"
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

func savePlot(samples []sample, n1, n2 float64, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Refraction from n1 = %.2f into n2 = %.2f", n1, n2)
	p.X.Label.Text = "incident angle θ1 (°)"
	p.Y.Label.Text = "outgoing angle (°)"
	p.X.Min, p.X.Max = 0, 90
	p.Y.Min, p.Y.Max = 0, 90
	p.Add(plotter.NewGrid())

	refracted := make(plotter.XYs, 0, len(samples))
	reflected := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		if s.result.RefractedAngle != nil {
			refracted = append(refracted, plotter.XY{X: s.incident, Y: *s.result.RefractedAngle})
		} else {
			reflected = append(reflected, plotter.XY{X: s.incident, Y: s.reflected})
		}
	}

	if len(refracted) > 0 {
		l, err := plotter.NewLine(refracted)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.RGBA{R: 46, G: 213, B: 115, A: 255}
		p.Add(l)
		p.Legend.Add("refracted θ2", l)
	}
	if len(reflected) > 0 {
		l, err := plotter.NewLine(reflected)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.RGBA{R: 255, G: 165, B: 2, A: 255}
		p.Add(l)
		p.Legend.Add("reflected", l)
	}
	if c := samples[0].result.CriticalAngle; c != nil {
		marker, err := plotter.NewLine(plotter.XYs{{X: *c, Y: 0}, {X: *c, Y: 90}})
		if err != nil {
			return err
		}
		marker.LineStyle.Color = color.RGBA{R: 160, G: 174, B: 192, A: 255}
		marker.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("critical %.1f°", *c), marker)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
