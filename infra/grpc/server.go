package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ItemServiceName is the health check service name reported for the item API.
const ItemServiceName = "sample.item.v1.ItemService"

// EventPublisherServiceName reports the broker connection of the event publisher.
const EventPublisherServiceName = "sample.item.v1.EventPublisher"

type Server struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

func NewServer(port string) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			recoveryInterceptor,
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus(ItemServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		server:   grpcServer,
		health:   healthServer,
		listener: lis,
	}, nil
}

// Start marks the item service as serving and blocks until the server stops.
func (s *Server) Start() error {
	s.health.SetServingStatus(ItemServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	zap.L().Info("gRPC server started successfully",
		zap.String("address", s.listener.Addr().String()))
	return s.server.Serve(s.listener)
}

func (s *Server) GetListener() net.Listener {
	return s.listener
}

// GracefulStop reports NOT_SERVING to watchers before draining connections.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// WatchDependency polls check every interval and reports its result as the
// health status of service until ctx is done.
func (s *Server) WatchDependency(ctx context.Context, service string, check func() bool, interval time.Duration) {
	report := func() {
		status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
		if check() {
			status = grpc_health_v1.HealthCheckResponse_SERVING
		}
		s.health.SetServingStatus(service, status)
	}

	report()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report()
		}
	}
}
