// Package server is the browser shell: it serves the page, a JSON API and a
// WebSocket per visitor that drives an independent scene.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/lux/render"
)

//go:embed static
var staticFiles embed.FS

// Config holds the server settings.
type Config struct {
	Addr      string
	FPS       int
	CacheSize int
	// MaxBacking caps either side of a rendered frame in backing pixels.
	MaxBacking int
	Theme      render.Theme
	Logger     *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Addr:       ":8080",
		FPS:        30,
		CacheSize:  128,
		MaxBacking: 4096,
		Theme:      render.DefaultTheme(),
	}
}

type Server struct {
	cfg      Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	frames   *lru.Cache

	// renderMu guards renderer, which serves /frame.png.
	renderMu sync.Mutex
	renderer *render.Renderer

	nextSession atomic.Uint64
	sessions    atomic.Int64
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	if cfg.MaxBacking <= 0 {
		cfg.MaxBacking = DefaultConfig().MaxBacking
	}
	frames, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("frame cache: %w", err)
	}
	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		frames:   frames,
		renderer: render.NewRenderer(cfg.Theme, cfg.Logger),
	}, nil
}

// Sessions is the number of open WebSocket sessions.
func (s *Server) Sessions() int64 { return s.sessions.Load() }

func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/api/refraction", s.refractionHandler)
	mux.HandleFunc("/frame.png", s.frameHandler)
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

// Run serves until ctx is done, then shuts down gracefully. Open sessions
// end with ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", s.cfg.Addr, "fps", s.cfg.FPS)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down", "sessions", s.Sessions())
		return srv.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	s.Close()
	return err
}

// Close releases the shared renderer.
func (s *Server) Close() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.renderer.Close()
}

type healthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Sessions int64  `json:"sessions"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, healthResponse{
		Status:   "ok",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Sessions: s.Sessions(),
	})
}

func (s *Server) refractionHandler(w http.ResponseWriter, r *http.Request) {
	in, err := inputsFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, newStateMessage(in))
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
