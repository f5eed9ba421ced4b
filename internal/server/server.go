// Package server exposes the monitoring engine over a local HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kshitijkb28/port-manager/internal/metrics"
	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/notification"
	"github.com/Kshitijkb28/port-manager/internal/process"
	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// Server wires the monitor and the termination manager to HTTP handlers.
type Server struct {
	mon      *monitor.PortMonitor
	mgr      *process.Manager
	table    sysproc.Table
	notifier *notification.Notifier
	auditor  *notification.Auditor
	metrics  *metrics.Metrics
	mux      *http.ServeMux
}

// New builds the server and its routes. metricsHandler may be nil to skip
// the /metrics endpoint.
func New(
	mon *monitor.PortMonitor,
	mgr *process.Manager,
	table sysproc.Table,
	notifier *notification.Notifier,
	auditor *notification.Auditor,
	m *metrics.Metrics,
	metricsHandler http.Handler,
) *Server {
	s := &Server{
		mon:      mon,
		mgr:      mgr,
		table:    table,
		notifier: notifier,
		auditor:  auditor,
		metrics:  m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ports", s.handlePorts)
	mux.HandleFunc("/api/kill/", s.handleKill)
	mux.HandleFunc("/healthz", s.handleHealth)
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	mux.Handle("/metrics", metricsHandler)
	s.mux = mux

	return s
}

// Handler returns the route table, usable directly in tests.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type portsResponse struct {
	Success bool              `json:"success"`
	Data    *monitor.Snapshot `json:"data,omitempty"`
	IsAdmin bool              `json:"is_admin"`
	Counts  map[string]int    `json:"counts,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.mon.GetSnapshot()
	if err != nil {
		// A partial socket list is worse than an explicit "try again".
		writeJSON(w, http.StatusInternalServerError, portsResponse{Error: err.Error()})
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveSnapshot(len(snap.User), len(snap.System))
	}

	writeJSON(w, http.StatusOK, portsResponse{
		Success: true,
		Data:    snap,
		IsAdmin: s.table.Elevated(),
		Counts: map[string]int{
			"system": len(snap.System),
			"user":   len(snap.User),
		},
	})
}

type killResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleKill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pidStr := strings.TrimPrefix(r.URL.Path, "/api/kill/")
	pid, err := strconv.ParseInt(pidStr, 10, 32)
	if err != nil || pid <= 0 {
		writeJSON(w, http.StatusBadRequest, killResponse{Error: "invalid pid"})
		return
	}

	tree := r.URL.Query().Get("tree") == "1" || r.URL.Query().Get("tree") == "true"

	res := s.mgr.Terminate(int32(pid), tree)
	if s.metrics != nil {
		s.metrics.Kills.WithLabelValues(res.Outcome.String()).Inc()
	}
	if s.auditor != nil {
		s.auditor.LogTermination(int32(pid), "", res.Outcome.String())
	}
	if s.notifier != nil {
		s.notifier.Termination(int32(pid), "", res.Outcome.String(), res.Message)
	}

	switch res.Outcome {
	case process.OutcomeKilled:
		writeJSON(w, http.StatusOK, killResponse{Success: true, Message: res.Message})
	case process.OutcomeNotFound:
		writeJSON(w, http.StatusNotFound, killResponse{Error: res.Message})
	case process.OutcomeAccessDenied, process.OutcomeBlocked:
		writeJSON(w, http.StatusForbidden, killResponse{Error: res.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, killResponse{Error: res.Message})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
