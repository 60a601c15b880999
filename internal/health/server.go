package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

type StatusSource interface {
	StatusFor(phase models.SyncPhase) (models.SyncStatus, bool)
}

type Server struct {
	router   *chi.Mux
	statuses StatusSource
}

func NewServer(statuses StatusSource) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		statuses: statuses,
	}

	r := s.router
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleHealth)
	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error stopping HTTP server", "error", err)
		}
	}()

	slog.Info("Health server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Healthy  bool               `json:"healthy"`
	Backfill *models.SyncStatus `json:"backfill,omitempty"`
	Live     *models.SyncStatus `json:"live,omitempty"`
}

// handleStatus reports the latest pass of each phase. It answers 503 when
// the latest live pass failed.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Healthy: true}
	if status, ok := s.statuses.StatusFor(models.PhaseBackfill); ok {
		resp.Backfill = &status
	}
	if status, ok := s.statuses.StatusFor(models.PhaseLive); ok {
		resp.Live = &status
		resp.Healthy = status.OK()
	}

	body, err := sonic.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !resp.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_, _ = w.Write(body)
}
