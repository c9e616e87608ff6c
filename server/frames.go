package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/echoflaresat/lux/render"
)

func frameKey(in render.Inputs, size frameSize) string {
	return fmt.Sprintf("%.4f|%.4f|%.4f|%gx%g@%g", in.N1, in.N2, in.Angle, size.width, size.height, size.dpr)
}

// frameHandler renders one frame for the query inputs. Encoded frames are
// kept in an LRU cache.
func (s *Server) frameHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := inputsFromQuery(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := frameSizeFromQuery(q, s.cfg.MaxBacking)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := frameKey(in, size)
	cache := "hit"
	data, ok := s.cachedFrame(key)
	if !ok {
		cache = "miss"
		data, err = s.renderPNG(in, size)
		if err != nil {
			s.logger.Error("failed to render frame", "key", key, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.frames.Add(key, data)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Frame-Cache", cache)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write frame", "error", err)
	}
}

func (s *Server) cachedFrame(key string) ([]byte, bool) {
	v, ok := s.frames.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (s *Server) renderPNG(in render.Inputs, size frameSize) ([]byte, error) {
	surface := render.NewSurface(render.Rect{Width: size.width, Height: size.height}, size.dpr)
	if !surface.Attached() {
		return nil, fmt.Errorf("empty frame %gx%g", size.width, size.height)
	}

	s.renderMu.Lock()
	s.renderer.Draw(surface, in)
	s.renderMu.Unlock()

	var buf bytes.Buffer
	if err := render.Encode(&buf, surface.Image(), render.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
