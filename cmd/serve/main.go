package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/echoflaresat/lux/server"
)

type config struct {
	addr      *string
	fps       *int
	cacheSize *int
	maxFrame  *int
	debug     *bool
	showHelp  *bool
}

func defineFlags() config {
	def := server.DefaultConfig()
	return config{
		addr:      flag.String("addr", def.Addr, "Listen address"),
		fps:       flag.Int("fps", def.FPS, "Frames per second pushed to each browser"),
		cacheSize: flag.Int("cache", def.CacheSize, "Number of encoded frames kept for /frame.png"),
		maxFrame:  flag.Int("max-frame", def.MaxBacking, "Largest frame side in backing pixels"),
		debug:     flag.Bool("debug", false, "Log debug messages"),
		showHelp:  flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Lux Server - Light Refraction Simulator in the Browser

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Server Options", []string{"addr", "fps", "cache", "max-frame"})
	printGroup("Misc", []string{"debug", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-10s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
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

	level := slog.LevelInfo
	if *cfg.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sc := server.DefaultConfig()
	sc.Addr = *cfg.addr
	sc.FPS = *cfg.fps
	sc.CacheSize = *cfg.cacheSize
	sc.MaxBacking = *cfg.maxFrame
	sc.Logger = logger

	srv, err := server.New(sc)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
