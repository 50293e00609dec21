// Package grpc serves the standard gRPC health service. The overall status
// and the per-store services ("redis", "db") follow periodic pings.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultCheckInterval = 5 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type GRPCServer struct {
	address  string
	logger   logging.Logger
	checks   map[string]Check
	interval time.Duration
	health   *health.Server
}

func NewGRPCServer(a string, l logging.Logger, checks map[string]Check) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		checks:   checks,
		interval: defaultCheckInterval,
		health:   health.NewServer(),
	}
}

// probe runs every check once and publishes the results.
func (s *GRPCServer) probe(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING

	for name, check := range s.checks {
		st := healthpb.HealthCheckResponse_SERVING
		if err := check(ctx); err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			overall = st
			s.logger.Warn(ctx, "health check failed", "service", name, "error", err)
		}
		s.health.SetServingStatus(name, st)
	}

	s.health.SetServingStatus("", overall)
}

func (s *GRPCServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
