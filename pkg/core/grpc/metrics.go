// ============================================================================
// meinDENKWERK (mDW) - dateutil
// ============================================================================
//
// Package:     grpc
// Description: Prometheus request metrics for gRPC servers and the HTTP
//              endpoint exposing them
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package grpc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics records gRPC request counts, latencies and in-flight calls on a
// private registry
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates request metrics under namespace. Go runtime and process
// collectors are registered alongside.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Unary gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Unary gRPC request latency by method.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_in_flight",
			Help:      "Unary gRPC requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry so callers can add their own collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one finished request
func (m *Metrics) Observe(method string, err error, d time.Duration) {
	m.requests.WithLabelValues(method, status.Code(err).String()).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

// UnaryInterceptor records every unary call
func (m *Metrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		resp, err := handler(ctx, req)
		m.Observe(info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MetricsServer exposes Metrics over HTTP
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates an HTTP server serving m at path on addr
func NewMetricsServer(addr, path string, m *Metrics) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// StartAsync serves metrics in a goroutine
func (s *MetricsServer) StartAsync() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Error("metrics server error", "address", s.server.Addr, "error", err)
		}
	}()
	serverLogger.Info("metrics endpoint listening", "address", s.server.Addr)
}

// Shutdown stops the metrics server
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
