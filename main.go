package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/shell"
)

type config struct {
	n1, n2, angle *float64
	width, height *int
	dpr           *float64
	out           *string
	quiet         *bool
	showHelp      *bool
}

func defineFlags() config {
	return config{
		n1:    flag.Float64("n1", optics.DefaultN1, "Refractive index of the upper medium"),
		n2:    flag.Float64("n2", optics.DefaultN2, "Refractive index of the lower medium"),
		angle: flag.Float64("angle", optics.DefaultAngle, "Incident angle in degrees from the normal"),

		width:  flag.Int("width", 800, "Frame width in logical pixels"),
		height: flag.Int("height", 600, "Frame height in logical pixels"),
		dpr:    flag.Float64("dpr", 1, "Device pixel ratio (backing pixels per logical pixel)"),

		out:   flag.String("out", "refraction.png", "Output image path (.png, .jpg or .tif)"),
		quiet: flag.Bool("q", false, "Do not print the result summary"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Lux - Light Refraction Frame Renderer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Media", []string{"n1", "n2", "angle"})
	printGroup("Frame Options", []string{"width", "height", "dpr"})
	printGroup("Output", []string{"out", "q"})
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

	in := render.Inputs{N1: *cfg.n1, N2: *cfg.n2, Angle: *cfg.angle}
	if err := validate(in); err != nil {
		log.Fatalf("Invalid input: %v", err)
	}

	img, res, err := renderImage(in, *cfg.width, *cfg.height, *cfg.dpr, render.DefaultTheme())
	if err != nil {
		log.Fatal(err)
	}
	if err := render.WriteFile(*cfg.out, img); err != nil {
		log.Fatalf("Failed to write %s: %v", *cfg.out, err)
	}
	if !*cfg.quiet {
		fmt.Println(summary(in, res, *cfg.out))
	}
}

// validate applies the control ranges to command line values.
func validate(in render.Inputs) error {
	for f, v := range map[shell.Field]float64{shell.FieldN1: in.N1, shell.FieldN2: in.N2, shell.FieldAngle: in.Angle} {
		if _, err := shell.ParseValue(f, fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}

// renderImage draws one frame and returns it with the computed result.
func renderImage(in render.Inputs, width, height int, dpr float64, theme render.Theme) (image.Image, optics.Result, error) {
	surface := render.NewSurface(render.Rect{Width: float64(width), Height: float64(height)}, dpr)
	if !surface.Attached() {
		return nil, optics.Result{}, fmt.Errorf("empty frame %dx%d", width, height)
	}
	res := optics.Refract(in.N1, in.N2, in.Angle)

	r := render.NewRenderer(theme, nil)
	defer r.Close()
	r.DrawResult(surface, in, res)
	return surface.Image(), res, nil
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func summary(in render.Inputs, res optics.Result, out string) string {
	p := shell.Panel(in)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Light Refraction") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("n1", p.N1.Text+" ("+p.N1.Medium+")")
	row("n2", p.N2.Text+" ("+p.N2.Medium+")")
	row("Incident", p.AngleLabel)
	switch {
	case res.IsTIR:
		row("Reflected", fmt.Sprintf("%.1f°", optics.ReflectedAngle(in.Angle)))
	case res.RefractedAngle != nil:
		row("Refracted", fmt.Sprintf("%.1f°", *res.RefractedAngle))
	}
	if p.CriticalAngle != "" {
		row("Critical angle", p.CriticalAngle)
	}
	row("Output", out)
	if p.TIR {
		b.WriteString(warnStyle.Render(p.Warning))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
