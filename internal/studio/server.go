package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Transport defaults.
const (
	DefaultQueueSize    = 64
	DefaultWriteTimeout = 5 * time.Second
	DefaultPingInterval = 10 * time.Second
	DefaultPath         = "/studio"
)

var (
	// ErrNotConnected is returned by Send when no editor is attached.
	ErrNotConnected = errors.New("studio: editor not connected")
	// ErrQueueFull is returned by Send when the outgoing queue is full.
	ErrQueueFull = errors.New("studio: outgoing queue full")
	// ErrBusy is reported when a second editor tries to connect.
	ErrBusy = errors.New("studio: editor already connected")
)

// Server is the websocket endpoint the editor connects to. Only one editor
// is served at a time. Incoming binary messages are queued on In for the
// game loop; Send queues outgoing ones.
type Server struct {
	upgrader websocket.Upgrader
	log      *slog.Logger
	in       chan []byte
	queue    int
	path     string
	origins  []string

	mu   sync.Mutex
	conn *websocket.Conn
	out  chan []byte
}

// ServerOption is a functional option for Server configuration.
type ServerOption func(*Server)

// WithQueueSize sets the capacity of the incoming and outgoing queues.
func WithQueueSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.queue = n
		}
	}
}

// WithPath sets the HTTP path ListenAndServe mounts the endpoint on.
func WithPath(path string) ServerOption {
	return func(s *Server) {
		if path != "" {
			s.path = path
		}
	}
}

// WithAllowedOrigins lets browser pages from origins (scheme://host[:port])
// open the link in addition to loopback pages.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// NewServer creates a server. A nil log means slog.Default().
func NewServer(log *slog.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log:   log,
		queue: DefaultQueueSize,
		path:  DefaultPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.in = make(chan []byte, s.queue)
	s.upgrader.CheckOrigin = s.checkOrigin
	return s
}

// checkOrigin accepts clients without an Origin header (the native editor),
// loopback pages and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.origins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && isLoopback(u.Hostname()) {
		return true
	}
	s.log.Warn("studio origin rejected", "origin", origin, "remote", r.RemoteAddr)
	return false
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// In returns the queue of messages received from the editor.
func (s *Server) In() <-chan []byte { return s.in }

// Connected reports whether an editor is attached.
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Send queues msg for the editor without blocking.
func (s *Server) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ErrNotConnected
	}
	select {
	case s.out <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// ServeHTTP upgrades the request and serves the editor until it
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("studio upgrade failed", "error", err)
		return
	}

	out, err := s.attach(conn)
	if err != nil {
		s.log.Warn("studio connection rejected", "remote", conn.RemoteAddr(), "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(DefaultWriteTimeout))
		_ = conn.Close()
		return
	}
	s.log.Info("studio connected", "remote", conn.RemoteAddr())

	done := make(chan struct{})
	go s.writeLoop(conn, out, done)

	s.readLoop(conn)

	close(done)
	s.detach(conn)
	_ = conn.Close()
	s.log.Info("studio disconnected", "remote", conn.RemoteAddr())
}

func (s *Server) attach(conn *websocket.Conn) (chan []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil, ErrBusy
	}
	s.conn = conn
	s.out = make(chan []byte, s.queue)
	return s.out, nil
}

func (s *Server) detach(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == conn {
		s.conn = nil
		s.out = nil
	}
}

func (s *Server) readLoop(conn *websocket.Conn) {
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("studio read failed", "error", err)
			}
			return
		}
		if typ != websocket.BinaryMessage {
			s.log.Debug("studio non-binary message dropped", "type", typ)
			continue
		}
		select {
		case s.in <- data:
		default:
			s.log.Warn("studio incoming queue full, message dropped")
		}
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, out <-chan []byte, done <-chan struct{}) {
	ping := time.NewTicker(DefaultPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case msg := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(DefaultWriteTimeout))
			if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				s.log.Warn("studio write failed", "error", err)
				_ = conn.Close()
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(DefaultWriteTimeout)); err != nil {
				s.log.Debug("studio ping failed", "error", err)
			}
		}
	}
}

// ListenAndServe serves the editor endpoint on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(s.path, s)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("studio listening", "address", addr, "path", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultWriteTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down studio server: %w", err)
		}
		// Shutdown does not touch hijacked connections.
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("studio server: %w", err)
	}
}
