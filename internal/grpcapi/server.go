package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
)

type Dependencies struct {
	Logger      *logger.Logger
	Validator   *service.Validator
	Revoker     *service.RevocationAuthority
	Checkpoints *service.CheckpointRecorder
}

// Server hosts the checkpoint scanner API and the standard health service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *logger.Logger
}

func NewServer(d Dependencies) *Server {
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}

	s := &Server{logger: d.Logger, health: health.NewServer()}
	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoverUnary, s.logUnary))

	RegisterCheckpointServer(s.grpcServer, &checkpointService{
		validator:   d.Validator,
		revoker:     d.Revoker,
		checkpoints: d.Checkpoints,
		logger:      d.Logger,
	})
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

// Serve accepts connections on lis until ctx ends or the server stops.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("grpc listening", "addr", lis.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Shutdown reports NOT_SERVING and drains in-flight calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	kv := []any{"method", info.FullMethod, "code", code.String(), "dur", time.Since(start).String()}
	if code == codes.Internal {
		s.logger.Error("grpc call failed", kv...)
	} else {
		s.logger.Info("grpc call", kv...)
	}
	return resp, err
}

func (s *Server) recoverUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("panic in grpc handler", "method", info.FullMethod, "panic", rec)
			err = status.Error(codes.Internal, "unexpected server error")
		}
	}()
	return handler(ctx, req)
}
