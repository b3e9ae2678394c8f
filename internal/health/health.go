// Package health reports store reachability over the standard gRPC health
// protocol and to the HTTP /healthz handler.
package health

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name clients pass in HealthCheckRequest.
const Service = "storefront"

// Check probes one dependency.
type Check func(ctx context.Context) error

type Monitor struct {
	mu     sync.RWMutex
	checks map[string]Check
	last   map[string]error
	srv    *health.Server
	logger *zap.Logger
}

func NewMonitor(logger *zap.Logger) *Monitor {
	return &Monitor{
		checks: make(map[string]Check),
		last:   make(map[string]error),
		srv:    health.NewServer(),
		logger: logger,
	}
}

func (m *Monitor) Add(name string, check Check) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = check
}

// Probe runs every check once and updates the serving status.
func (m *Monitor) Probe(ctx context.Context) map[string]error {
	m.mu.RLock()
	checks := make(map[string]Check, len(m.checks))
	for k, v := range m.checks {
		checks[k] = v
	}
	m.mu.RUnlock()

	results := make(map[string]error, len(checks))
	status := healthpb.HealthCheckResponse_SERVING
	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(cctx)
		cancel()
		results[name] = err
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			m.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.last = results
	m.mu.Unlock()

	m.srv.SetServingStatus(Service, status)
	m.srv.SetServingStatus("", status)
	return results
}

// Healthy reports the outcome of the last Probe.
func (m *Monitor) Healthy() (bool, map[string]string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ok := true
	out := make(map[string]string, len(m.last))
	for name, err := range m.last {
		if err != nil {
			ok = false
			out[name] = "unhealthy"
			continue
		}
		out[name] = "healthy"
	}
	return ok, out
}

// Run probes every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	m.Probe(ctx)
	for {
		select {
		case <-ticker.C:
			m.Probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Register exposes the health service on s.
func (m *Monitor) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, m.srv)
}

// Serve runs a gRPC server with only the health service on lis.
func (m *Monitor) Serve(lis net.Listener) (*grpc.Server, <-chan error) {
	s := grpc.NewServer()
	m.Register(s)
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(lis) }()
	return s, errc
}
