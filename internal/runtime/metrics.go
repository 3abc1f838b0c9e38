package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	loggingpkg "github.com/drblury/ros2bridge/internal/runtime/logging"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsServer serves /metrics until its context is cancelled.
type metricsServer struct {
	server   *http.Server
	listener net.Listener
	logger   loggingpkg.ServiceLogger
	done     chan struct{}
}

func newMetricsServer(port int, gatherer prometheus.Gatherer, logger loggingpkg.ServiceLogger) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &metricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start binds the listener and serves in the background. The server shuts
// down when ctx is cancelled.
func (m *metricsServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return fmt.Errorf("listen for metrics on %s: %w", m.server.Addr, err)
	}
	m.listener = listener
	m.logger.Info("Starting metrics server", loggingpkg.LogFields{"address": listener.Addr().String()})

	go func() {
		defer close(m.done)
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("Metrics server failed", err, loggingpkg.LogFields{"address": m.server.Addr})
		}
	}()

	go func() {
		<-ctx.Done()
		_ = m.Shutdown()
	}()
	return nil
}

// Addr returns the bound address once Start succeeded.
func (m *metricsServer) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

func (m *metricsServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	return m.server.Shutdown(ctx)
}
