package viewserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/zishang520/socket.io/v2/socket"
)

const (
	EventGraph        = "graph"
	EventResults      = "results"
	EventInspect      = "inspect"
	EventComponent    = "component"
	EventInspectError = "inspect_error"
)

// Server is the socket.io presentation adapter.
type Server struct {
	ctx context.Context
	io  *socket.Server

	mu   sync.RWMutex
	snap Snapshot

	httpServer *http.Server
}

// New creates a server. ctx carries the logger used for every diagnostic.
func New(ctx context.Context) *Server {
	s := &Server{
		ctx: ctx,
		io:  socket.NewServer(nil, nil),
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler returns the mux serving socket.io and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// healthHandler answers liveness probes.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(s.ctx).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// Snapshot returns the current snapshot.
func (s *Server) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Publish replaces the snapshot and broadcasts it to every connected client.
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	logger := ctxlog.FromContext(s.ctx)
	for event, payload := range s.payloads(snap) {
		if err := s.io.Emit(event, payload); err != nil {
			logger.Warn("Failed to broadcast view update.", "event", event, "error", err)
		}
	}
	logger.Debug("Published view snapshot.", "has_results", snap.Results != nil)
}

// payloads renders the non-empty parts of snap keyed by event name.
func (s *Server) payloads(snap Snapshot) map[string]any {
	out := make(map[string]any, 2)
	logger := ctxlog.FromContext(s.ctx)
	if snap.Graph != nil {
		if p, err := toWire(snap.Graph); err != nil {
			logger.Error("Failed to encode graph view.", "error", err)
		} else {
			out[EventGraph] = p
		}
	}
	if snap.Results != nil {
		if p, err := toWire(snap.Results); err != nil {
			logger.Error("Failed to encode results.", "error", err)
		} else {
			out[EventResults] = p
		}
	}
	return out
}

func (s *Server) onConnection(clients ...any) {
	logger := ctxlog.FromContext(s.ctx)
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		logger.Error("Unexpected connection payload.", "type", fmt.Sprintf("%T", clients[0]))
		return
	}
	logger = logger.With("sid", client.Id())
	logger.Info("View client connected.")

	client.On(EventInspect, func(args ...any) {
		event, payload := s.Inspect(args...)
		if err := client.Emit(event, payload); err != nil {
			logger.Warn("Failed to answer inspect request.", "error", err)
		}
	})
	client.On("disconnect", func(reason ...any) {
		logger.Info("View client disconnected.", "reason", reason)
	})

	snap := s.Snapshot()
	for _, event := range []string{EventGraph, EventResults} {
		if payload, ok := s.payloads(snap)[event]; ok {
			if err := client.Emit(event, payload); err != nil {
				logger.Warn("Failed to send snapshot.", "event", event, "error", err)
			}
		}
	}
}

// Inspect resolves an "inspect" request and returns the reply event and its
// payload. The first argument must be the component name.
func (s *Server) Inspect(args ...any) (string, any) {
	var name string
	if len(args) > 0 {
		name, _ = args[0].(string)
	}
	name = strings.TrimSpace(name)

	snap := s.Snapshot()
	if snap.Graph == nil {
		return EventInspectError, InspectError{Name: name, Error: "no killweb loaded"}
	}
	node, ok := snap.Graph.Node(name)
	if !ok {
		return EventInspectError, InspectError{Name: name, Error: fmt.Sprintf("%s: %q", graph.ErrComponentNotFound, name)}
	}
	payload, err := toWire(node)
	if err != nil {
		return EventInspectError, InspectError{Name: name, Error: err.Error()}
	}
	ctxlog.FromContext(s.ctx).Debug("Component inspected.", "component", name)
	return EventComponent, payload
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(s.ctx)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("View server starting", "address", addr)
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("view server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down view server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("View server shutdown failed", "error", err)
		return err
	}
	logger.Debug("View server shut down gracefully.")
	return nil
}
