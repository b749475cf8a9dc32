// Command ft-server starts the flight tracker gRPC API and the share-link HTTP endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/kayatkin/flight-tracker-sub000/internal/config"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
	"github.com/kayatkin/flight-tracker-sub000/internal/migrate"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository/postgres"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository/sqlite"
	grpcserver "github.com/kayatkin/flight-tracker-sub000/internal/server/grpc"
	httpserver "github.com/kayatkin/flight-tracker-sub000/internal/server/http"
	"github.com/kayatkin/flight-tracker-sub000/internal/service"
	"github.com/kayatkin/flight-tracker-sub000/internal/workspace"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownTimeout = 5 * time.Second

// store is an opened persistence backend.
type store struct {
	datasets repository.DatasetRepository
	sessions repository.SessionRepository
	ping     func(ctx context.Context) error
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			datasets: sqlite.NewDatasetRepo(db),
			sessions: sqlite.NewSessionRepo(db),
			ping:     db.Ping,
			close:    func() { _ = db.Close() },
		}, nil
	default:
		if err := migrate.Up(ctx, cfg.DSN); err != nil {
			return nil, err
		}
		db, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &store{
			datasets: postgres.NewDatasetRepo(db),
			sessions: postgres.NewSessionRepo(db),
			ping:     db.Ping,
			close:    db.Close,
		}, nil
	}
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "ft-server:", err)
		}
		os.Exit(2)
	}

	logger := newLogger(cfg.Dev)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("grpc", cfg.GRPCAddr),
		zap.String("http", cfg.HTTPAddr),
		zap.String("store", cfg.Store),
	)
	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("flight_tracker", reg)

	spaces := workspace.NewManager(st.datasets, workspace.Options{
		Delay:        cfg.AutosaveDelay,
		FlushTimeout: cfg.FlushTimeout,
		IdleTTL:      cfg.IdleTTL,
		Logger:       logger.Named("workspace"),
		Metrics:      m,
	})
	go spaces.RunEviction(ctx, time.Minute)

	// Services
	links := service.ShareLinks{AppOrigin: cfg.AppOrigin, SharePath: cfg.SharePath, MiniAppLink: cfg.MiniAppLink}
	identitySvc := service.NewIdentityService([]byte(cfg.JWTKey), cfg.AccessTTL)
	flightSvc := service.NewFlightService(spaces)
	sessionSvc := service.NewSessionService(st.sessions, m)
	resolver := service.NewResolver(st.sessions, spaces, m)

	// gRPC server with interceptors
	var extra []grpc.ServerOption
	if cfg.TLSCert != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			logger.Fatal("failed to load TLS cert/key", zap.Error(err))
		}
		extra = append(extra, grpc.Creds(creds))
	} else {
		logger.Warn("serving gRPC without TLS")
	}
	app := grpcserver.New(identitySvc, flightSvc, sessionSvc, resolver, links)
	gs := grpcserver.NewGRPCServer(logger.Named("grpc"), m, app, extra...)

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	if cfg.Dev {
		reflection.Register(gs)
	}

	hsrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpserver.NewRouter(httpserver.Deps{
			Log:            logger.Named("http"),
			Resolver:       resolver,
			Links:          links,
			AllowedOrigins: cfg.AllowedOrigins,
			Gatherer:       reg,
			Ping:           st.ping,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr))
		errCh <- gs.Serve(lis)
	}()
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := hsrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		exitCode = 1
	}

	// graceful shutdown: stop intake, then persist pending changes
	hs.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		gs.Stop()
	}
	if err := hsrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := spaces.Close(shutdownCtx); err != nil {
		logger.Error("flush on shutdown", zap.Error(err))
		exitCode = 1
	}

	logger.Info("shutdown complete")
	if exitCode != 0 {
		_ = logger.Sync()
		st.close()
		os.Exit(exitCode)
	}
}
