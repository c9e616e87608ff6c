package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/lux/interact"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/shell"
)

const writeWait = 5 * time.Second

// SafeWriter serializes writes to a WebSocket connection.
type SafeWriter struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

func (w *SafeWriter) WriteJSON(v any) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *SafeWriter) WriteMessage(messageType int, data []byte) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(messageType, data)
}

func (w *SafeWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.Close()
}

// session is one visitor's scene. Everything except reading the socket
// happens on the frame loop goroutine.
type session struct {
	id     uint64
	conn   *websocket.Conn
	writer *SafeWriter
	logger *slog.Logger

	state      *shell.State
	dispatcher *interact.Dispatcher
	loop       *interact.FrameLoop
	renderer   *render.Renderer
	view       *interact.View

	maxBacking int

	encoded   bytes.Buffer
	lastFrame []byte
	lastKey   paintKey
	sent      int
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := s.nextSession.Add(1)
	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	sess := s.newSession(id, conn)
	if err := sess.run(r.Context()); err != nil {
		sess.logger.Warn("session ended with error", "error", err)
	}
}

func (s *Server) newSession(id uint64, conn *websocket.Conn) *session {
	logger := s.logger.With("session", id)
	sess := &session{
		id:         id,
		conn:       conn,
		writer:     NewSafeWriter(conn),
		logger:     logger,
		state:      shell.NewState(),
		dispatcher: interact.NewDispatcher(),
		loop:       interact.NewFrameLoop(s.cfg.FPS, logger),
		renderer:   render.NewRenderer(s.cfg.Theme, logger),
		maxBacking: s.cfg.MaxBacking,
	}
	sess.view = interact.NewView(interact.ViewConfig{
		Dispatcher: sess.dispatcher,
		Loop:       sess.loop,
		Renderer:   sess.renderer,
		Source:     sess.state,
		OnAngle:    sess.state.SetAngle,
		OnDraw:     sess.sendFrame,
		Logger:     logger,
	})
	return sess
}

func (ss *session) run(ctx context.Context) error {
	ss.logger.Info("session opened", "remote", ss.conn.RemoteAddr().String())
	ss.view.Mount(render.Rect{}, 1)
	off := ss.state.OnChange(func(render.Inputs) { ss.sendState() })
	defer func() {
		off()
		ss.view.Unmount()
		ss.renderer.Close()
		ss.writer.Close()
		ss.logger.Info("session closed", "frames", ss.sent)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ss.loop.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return ss.readLoop(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		ss.conn.Close()
		return nil
	})

	if err := ss.loop.Post(ctx, ss.sendState); err != nil {
		ss.logger.Debug("failed to queue initial state", "error", err)
	}

	err := g.Wait()
	if err == nil || errors.Is(err, context.Canceled) || isClosed(err) {
		return nil
	}
	return err
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
		errors.Is(err, net.ErrClosed)
}

// readLoop decodes client messages and hands them to the frame loop.
func (ss *session) readLoop(ctx context.Context) error {
	for {
		_, data, err := ss.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			ss.logger.Debug("dropping malformed message", "error", err)
			continue
		}
		if err := ss.loop.Post(ctx, func() { ss.handle(msg) }); err != nil {
			return nil
		}
	}
}

func (ss *session) handle(msg clientMessage) {
	switch msg.Type {
	case msgPointerDown:
		ss.dispatcher.Dispatch(interact.Event{Kind: interact.PointerDown, X: msg.X, Y: msg.Y})
	case msgPointerMove:
		ss.dispatcher.Dispatch(interact.Event{Kind: interact.PointerMove, X: msg.X, Y: msg.Y})
	case msgPointerUp:
		ss.dispatcher.Dispatch(interact.Event{Kind: interact.PointerUp, X: msg.X, Y: msg.Y})
	case msgResize:
		if err := checkBacking(msg.Width, msg.Height, msg.DPR, ss.maxBacking); err != nil {
			ss.reply(err)
			return
		}
		ss.dispatcher.Dispatch(interact.Event{Kind: interact.Resize, Rect: msg.rect(), DPR: msg.DPR})
	case msgSet:
		ss.reply(ss.set(msg))
	case msgPreset:
		ss.reply(ss.state.ApplyPreset(shell.Field(msg.Field), msg.Name))
	case msgPing:
		ss.write(pongMessage{Type: "pong"})
	default:
		ss.reply(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (ss *session) set(msg clientMessage) error {
	f := shell.Field(msg.Field)
	if msg.Value != nil {
		return ss.state.Set(f, *msg.Value)
	}
	return ss.state.SetFromText(f, msg.Text)
}

func (ss *session) reply(err error) {
	if err == nil {
		return
	}
	ss.logger.Debug("rejected client message", "error", err)
	ss.write(errorMessage{Type: "error", Error: err.Error()})
}

func (ss *session) sendState() {
	ss.write(newStateMessage(ss.state.Snapshot()))
}

func (ss *session) write(v any) {
	if err := ss.writer.WriteJSON(v); err != nil {
		ss.logger.Debug("failed to write message", "error", err)
	}
}

// paintKey identifies what a painted frame shows.
type paintKey struct {
	in            render.Inputs
	width, height float64
	dpr           float64
}

// sendFrame pushes the painted surface as PNG. Frames of the inputs and size
// already sent are not encoded again, and a frame that encodes to the bytes
// last sent is dropped.
func (ss *session) sendFrame(s *render.Surface, in render.Inputs) {
	r := s.Rect()
	key := paintKey{in: in, width: r.Width, height: r.Height, dpr: s.DPR()}
	if ss.lastFrame != nil && key == ss.lastKey {
		return
	}
	ss.lastKey = key

	ss.encoded.Reset()
	if err := render.Encode(&ss.encoded, s.Image(), render.PNG); err != nil {
		ss.logger.Error("failed to encode frame", "error", err)
		return
	}
	if bytes.Equal(ss.encoded.Bytes(), ss.lastFrame) {
		return
	}
	ss.lastFrame = append(ss.lastFrame[:0], ss.encoded.Bytes()...)
	if err := ss.writer.WriteMessage(websocket.BinaryMessage, ss.lastFrame); err != nil {
		ss.logger.Debug("failed to write frame", "error", err)
		return
	}
	ss.sent++
}
