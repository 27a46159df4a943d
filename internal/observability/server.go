// # internal/observability/server.go
package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status        string `json:"status"`
	Modules       int    `json:"modules"`
	Cycles        int    `json:"cycles"`
	LastScan      string `json:"last_scan,omitempty"`
	ParseFailures int    `json:"parse_failures"`
}

// Server exposes /metrics and /health on a dedicated listener.
type Server struct {
	addr   string
	health func(ctx context.Context) HealthStatus
	server *http.Server
}

func NewServer(addr string, health func(ctx context.Context) HealthStatus) *Server {
	return &Server{addr: addr, health: health}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.health(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
