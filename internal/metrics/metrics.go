package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "streak"

// Metrics holds the tracker's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	checks              *prometheus.CounterVec
	currentStreak       prometheus.Gauge
	longestStreak       prometheus.Gauge
	notificationsFailed prometheus.Counter
	lastCheck           prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Activity checks by trigger kind and outcome.",
		}, []string{"kind", "outcome"}),
		currentStreak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_days",
			Help:      "Current streak length in days.",
		}),
		longestStreak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "longest_days",
			Help:      "Longest streak length in days.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notifications that could not be delivered.",
		}),
		lastCheck: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_check_timestamp_seconds",
			Help:      "Unix time of the most recent check.",
		}),
	}
	m.registry.MustRegister(m.checks, m.currentStreak, m.longestStreak, m.notificationsFailed, m.lastCheck)
	return m
}

// ObserveCheck records one finished check.
func (m *Metrics) ObserveCheck(kind, outcome string, current, longest int, at time.Time) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(kind, outcome).Inc()
	m.currentStreak.Set(float64(current))
	m.longestStreak.Set(float64(longest))
	m.lastCheck.Set(float64(at.Unix()))
}

// NotificationFailed counts an undelivered notification.
func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.notificationsFailed.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves /metrics and /health.
func (m *Metrics) Handler() http.Handler {
	router := http.NewServeMux()
	router.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down metrics server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
