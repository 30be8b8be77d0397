// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/taibuivan/configlang/internal/platform/ctxutil"
	"github.com/taibuivan/configlang/pkg/uuidv7"
)

// GRPCService is implemented by every service the gRPC server hosts.
type GRPCService interface {
	Register(registrar grpc.ServiceRegistrar)
}

// GRPCServer wraps a [grpc.Server] together with the standard health service.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
	log    *slog.Logger
}

// NewGRPCServer builds the gRPC server, registers services and marks every
// registered service (and the empty server name) as SERVING.
func NewGRPCServer(port string, log *slog.Logger, services ...GRPCService) *GRPCServer {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			unaryRequestID(),
			unaryLogger(log),
			unaryRecovery(log),
		),
	)

	for _, service := range services {
		service.Register(server)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for name := range server.GetServiceInfo() {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	return &GRPCServer{server: server, health: healthServer, addr: ":" + port, log: log}
}

// Server exposes the underlying [grpc.Server].
func (s *GRPCServer) Server() *grpc.Server {
	return s.server
}

// Serve accepts connections on listener until Stop is called.
func (s *GRPCServer) Serve(listener net.Listener) error {
	s.log.Info("grpc_server_starting", slog.String("addr", listener.Addr().String()))
	return s.server.Serve(listener)
}

// ListenAndServe listens on the configured port and serves.
func (s *GRPCServer) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("api: grpc listen on %s: %w", s.addr, err)
	}
	return s.Serve(listener)
}

// Shutdown flips health to NOT_SERVING and drains in-flight calls.
//
// If draining exceeds timeout the server is stopped forcibly.
func (s *GRPCServer) Shutdown(timeout time.Duration) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.log.Warn("grpc_graceful_stop_timeout", slog.Duration("timeout", timeout))
		s.server.Stop()
	}
}

// # Interceptors

// unaryRequestID stores a fresh request id in the context so handler logs
// and error details can be correlated like on the HTTP side.
func unaryRequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(ctxutil.WithRequestID(ctx, uuidv7.New()), req)
	}
}

func unaryLogger(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		requestLogger := log.With(slog.String("request_id", ctxutil.GetRequestID(ctx)))

		resp, err := handler(ctxutil.WithLogger(ctx, requestLogger), req)

		code := status.Code(err)
		level := slog.LevelInfo
		switch code {
		case codes.OK, codes.NotFound, codes.InvalidArgument:
		default:
			level = slog.LevelError
		}

		requestLogger.Log(ctx, level, "grpc_request",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}

func unaryRecovery(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("grpc_panic_recovered",
					slog.String("method", info.FullMethod),
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				err = status.Error(codes.Internal, "Internal server error.")
			}
		}()
		return handler(ctx, req)
	}
}
