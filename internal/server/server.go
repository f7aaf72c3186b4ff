// Package server exposes report generation over HTTP. Every request builds
// its own dataset and report; handlers share nothing but the metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dshills/gpareport/internal/config"
	"github.com/dshills/gpareport/internal/dataset"
	"github.com/dshills/gpareport/internal/profile"
	"github.com/dshills/gpareport/internal/render"
	"github.com/dshills/gpareport/internal/report"
)

// Server ties HTTP routes to the report pipeline.
type Server struct {
	cfg      *config.Config
	version  string
	log      *zap.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// New creates a Server. Collectors are registered with reg.
func New(cfg *config.Config, version string, log *zap.Logger, reg *prometheus.Registry) *Server {
	return &Server{
		cfg:      cfg,
		version:  version,
		log:      log,
		metrics:  NewMetrics(reg),
		gatherer: reg,
	}
}

// Routes returns the service's HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.logRequests, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		s.write(w, r, []byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Post("/v1/report", s.CreateReport)
	return r
}

// CreateReport reads a CSV body and responds with the report.
// Query parameters profile, credit_policy, semester_order and format
// override the server configuration for this request.
func (s *Server) CreateReport(w http.ResponseWriter, r *http.Request) {
	cfg := *s.cfg
	q := r.URL.Query()
	if v := q.Get("profile"); v != "" {
		cfg.Profile = v
	}
	if v := q.Get("credit_policy"); v != "" {
		cfg.CreditPolicy = v
	}
	if v := q.Get("semester_order"); v != "" {
		cfg.SemesterOrder = v
	}
	if v := q.Get("format"); v != "" {
		cfg.Format = v
	}
	if err := cfg.Validate(); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid_request", err)
		return
	}
	opts, _ := cfg.Options()

	prof, err := profile.LoadBuiltin(cfg.Profile)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid_request", err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes)
	ds, err := dataset.Parse(body, prof.Layout())
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, "too_large", err)
			return
		}
		s.fail(w, r, http.StatusUnprocessableEntity, "unreadable", err)
		return
	}

	rep := report.Build(ds, opts)
	rep.Version = s.version
	rep.Input.Profile = prof.Name
	s.metrics.observe(ds.Diagnostics, len(ds.Records))

	var out []byte
	contentType := "application/json"
	if cfg.Format == "md" {
		out = []byte(render.Markdown(rep))
		contentType = "text/markdown; charset=utf-8"
	} else {
		out, err = json.Marshal(rep)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, "encode_failed", fmt.Errorf("server.CreateReport: %w", err))
			return
		}
		out = append(out, '\n')
	}
	s.metrics.reports.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", contentType)
	s.write(w, r, out)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, b []byte) {
	if _, err := w.Write(b); err != nil {
		s.log.Warn("write response failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, outcome string, err error) {
	s.metrics.reports.WithLabelValues(outcome).Inc()
	s.log.Warn("report request failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", code),
		zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		s.log.Warn("write response failed", zap.Error(encErr))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.ListenAndServe: shutdown: %w", err)
		}
		return nil
	}
}
