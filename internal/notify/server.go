package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// CheckFunc re-evaluates budgets and reports how many alerts it raised.
type CheckFunc func(ctx context.Context) (int, error)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastCheckAt     time.Time `json:"last_check_at,omitempty"`
	CheckCount      int64     `json:"check_count"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Server exposes a Feed over HTTP: recent alerts as JSON, live alerts as
// server-sent events, and an endpoint to trigger a budget check.
type Server struct {
	addr  string
	feed  *Feed
	check CheckFunc
	log   *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastCheckAt time.Time
	checkCount  int64
	lastError   string
}

// NewServer returns a server for feed. check may be nil, in which case
// POST /v1/check is not registered.
func NewServer(addr string, feed *Feed, check CheckFunc) *Server {
	if addr == "" {
		addr = "127.0.0.1:8787"
	}
	return &Server{
		addr:      addr,
		feed:      feed,
		check:     check,
		log:       slog.Default().With("component", "feed-server"),
		startedAt: time.Now(),
	}
}

// Addr is the address the server listens on.
func (s *Server) Addr() string { return s.addr }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/alerts", s.handleAlerts)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	if s.check != nil {
		mux.HandleFunc("POST /v1/check", s.handleCheck)
	}
	return mux
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("feed http server: %w", err)
	}
}

func (s *Server) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		LastCheckAt:     s.lastCheckAt,
		CheckCount:      s.checkCount,
		LastError:       s.lastError,
		EventCount:      len(s.feed.Events()),
		SubscriberCount: s.feed.SubscriberCount(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.feed.Events())
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	n, err := s.check(r.Context())

	s.mu.Lock()
	s.lastCheckAt = time.Now()
	s.checkCount++
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"alerts": n})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.feed.Subscribe(16)
	defer unsubscribe()

	// Replay what we have so a new client is not blank.
	for _, ev := range s.feed.Events() {
		writeSSE(w, ev)
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "id: %s\n", ev.ID)
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
