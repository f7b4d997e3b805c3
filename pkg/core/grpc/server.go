// ============================================================================
// meinDENKWERK (mDW) - dateutil
// ============================================================================
//
// Package:     grpc
// Description: gRPC server wrapper with keepalive, interceptor chain,
//              reflection and graceful shutdown
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/msto63/mdw-dateutil/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

var serverLogger = logging.New("grpc-server")

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration

	// Metrics is optional; when set every unary call is recorded
	Metrics *Metrics
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "0.0.0.0",
		Port:              9170,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    4 * 1024 * 1024, // 4MB
		EnableReflection:  true,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server wraps a gRPC server with additional functionality
type Server struct {
	server *grpc.Server
	config ServerConfig

	mu       sync.RWMutex
	listener net.Listener
}

// NewServer creates a new gRPC server
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	unary := []grpc.UnaryServerInterceptor{
		RecoveryInterceptor(),
		RequestIDInterceptor(),
		LoggingInterceptor(),
	}
	if cfg.Metrics != nil {
		unary = append(unary, cfg.Metrics.UnaryInterceptor())
	}

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(),
			StreamLoggingInterceptor(),
		),
	}

	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)

	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		config: cfg,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

func (s *Server) listen() (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}

// Start starts the gRPC server and blocks until it stops
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener and blocks until the server stops
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	serverLogger.Info("gRPC server listening", "address", listener.Addr().String())
	return s.server.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			// server might be shutting down
			serverLogger.Error("gRPC server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.server.GracefulStop()
}

// StopWithTimeout stops the server gracefully, forcing it down when ctx expires
func (s *Server) StopWithTimeout(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
		serverLogger.Warn("graceful stop timed out, forcing shutdown")
		s.server.Stop()
	}
}

// Address returns the server address
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
