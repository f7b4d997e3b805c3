package server

import (
	"context"
	"net"
	"time"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	coreGrpc "github.com/msto63/mdw-dateutil/pkg/core/grpc"
	"github.com/msto63/mdw-dateutil/pkg/core/health"
	"github.com/msto63/mdw-dateutil/pkg/core/logging"
	"github.com/msto63/mdw-dateutil/pkg/core/version"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server is the DateUtil gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	healthSrv *grpchealth.Server
	logger    *logging.Logger
	config    Config
	startTime time.Time

	watchCtx  context.Context
	stopWatch context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool

	// HealthInterval is how often health checks are republished; 0 disables it
	HealthInterval time.Duration

	Service service.Config

	// Metrics is optional
	Metrics *coreGrpc.Metrics
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9170,
		EnableReflection: true,
		HealthInterval:   30 * time.Second,
	}
}

// New creates a new DateUtil server
func New(cfg Config) (*Server, error) {
	logger := logging.New("dateutil-server")

	if cfg.Service.Logger == nil {
		cfg.Service.Logger = logging.New("dateutil")
	}
	svc, err := service.NewService(cfg.Service)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create service").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("server.New")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcCfg.Metrics = cfg.Metrics

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("dateutil", version.Service)
	healthRegistry.RegisterFunc("datex", selfCheck)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	server := &Server{
		watchCtx:  watchCtx,
		stopWatch: stopWatch,
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		healthSrv: grpchealth.NewServer(),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterDateUtilServer(grpcServer.GRPCServer(), server)
	healthpb.RegisterHealthServer(grpcServer.GRPCServer(), server.healthSrv)

	server.publishHealth(context.Background())

	return server, nil
}

// selfCheck evaluates known vectors through the library
func selfCheck(ctx context.Context) health.CheckResult {
	result := health.CheckResult{Name: "datex", Status: health.StatusHealthy, Message: "date library operational"}

	leap, err := datex.AddDays("20240228", 1)
	if err == nil && leap == "20240229" {
		var jst string
		if jst, err = datex.UTCToJST("20211231 150000"); err == nil && jst == "20220101 000000" {
			return result
		}
	}

	result.Status = health.StatusUnhealthy
	result.Message = "known date vectors failed"
	if err != nil {
		result.Details = map[string]interface{}{"error": err.Error()}
	}
	return result
}

// publishHealth sets the serving status of the server and of ServiceName
func (s *Server) publishHealth(ctx context.Context) {
	report := s.health.Publish(ctx, s.healthSrv, ServiceName)
	s.healthSrv.SetServingStatus("", report.Status.ServingStatus())
}

func (s *Server) startHealthWatch() {
	if s.config.HealthInterval <= 0 {
		return
	}
	go s.health.Watch(s.watchCtx, s.config.HealthInterval, s.healthSrv, ServiceName)
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting DateUtil server", "host", s.config.Host, "port", s.config.Port,
		"utc_parsing", s.service.UTCParsing().String())
	s.startHealthWatch()
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting DateUtil server (async)", "host", s.config.Host, "port", s.config.Port)
	s.startHealthWatch()
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener and blocks until the server stops
func (s *Server) Serve(lis net.Listener) error {
	s.startHealthWatch()
	return s.grpc.Serve(lis)
}

// Stop marks the server as not serving and stops it within ctx
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping DateUtil server", "uptime", time.Since(s.startTime).String())
	s.stopWatch()
	s.healthSrv.Shutdown()
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Service returns the operation service
func (s *Server) Service() *service.Service {
	return s.service
}
