// Package metrics exposes Prometheus counters for analysis runs. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds all Prometheus metrics of the analyser.
type Metrics struct {
	Registry *prometheus.Registry

	AnalysesTotal *prometheus.CounterVec // labels: result=ok|warning
	WarningsTotal *prometheus.CounterVec // labels: kind
	SignalsTotal  *prometheus.CounterVec // labels: signal
	FetchDuration prometheus.Histogram
}

// New registers and returns all metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksignal_analyses_total",
			Help: "Symbol analyses by result",
		}, []string{"result"}),
		WarningsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksignal_warnings_total",
			Help: "Per-symbol warnings by kind",
		}, []string{"kind"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksignal_signals_total",
			Help: "Latest signals emitted by kind",
		}, []string{"signal"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocksignal_fetch_duration_seconds",
			Help:    "Price history retrieval latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.Registry.MustRegister(m.AnalysesTotal, m.WarningsTotal, m.SignalsTotal, m.FetchDuration)
	return m
}

// ObserveFetch records one retrieval.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// Analysis counts one finished symbol.
func (m *Metrics) Analysis(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "warning"
	}
	m.AnalysesTotal.WithLabelValues(result).Inc()
}

// Warning counts one per-symbol warning.
func (m *Metrics) Warning(kind string) {
	if m == nil {
		return
	}
	m.WarningsTotal.WithLabelValues(kind).Inc()
}

// Signal counts one latest signal.
func (m *Metrics) Signal(signal string) {
	if m == nil {
		return
	}
	m.SignalsTotal.WithLabelValues(signal).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server failed", zap.Error(err))
	}
}
