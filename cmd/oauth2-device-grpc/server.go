package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wrale/oauth2-device-grpc/cmd/oauth2-device-grpc/handlers/common"
	"github.com/wrale/oauth2-device-grpc/cmd/oauth2-device-grpc/handlers/health"
	"github.com/wrale/oauth2-device-grpc/internal/observability"
	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
	"github.com/wrale/oauth2-device-grpc/internal/service"
)

type server struct {
	cfg     Config
	logger  *zap.Logger
	grpc    *grpc.Server
	health  *grpchealth.Server
	checks  *health.Handler
	router  *chi.Mux
	http    *http.Server
	metrics *observability.Metrics
}

func newServer(cfg Config, svc *service.Server, checkers map[string]health.Checker, metrics *observability.Metrics, logger *zap.Logger) *server {
	s := &server{
		cfg:     cfg,
		logger:  logger,
		health:  grpchealth.NewServer(),
		checks:  health.New(checkers).WithVersion(Version),
		router:  chi.NewRouter(),
		metrics: metrics,
	}

	s.grpc = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(service.UnaryInterceptor(logger, metrics)),
		grpc.ChainStreamInterceptor(service.StreamInterceptor(logger, metrics)),
	)
	oauthpb.RegisterOAuthServiceServer(s.grpc, svc)
	grpc_health_v1.RegisterHealthServer(s.grpc, s.health)
	if cfg.GRPCReflection {
		reflection.Register(s.grpc)
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger.Named("admin")))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.routes()

	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *server) routes() {
	s.router.Method(http.MethodGet, "/health", s.checks)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported")
	})
}

// requestLogger logs each admin request through zap. Requests answered
// below 400 log at debug.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := zapcore.DebugLevel
			if status >= http.StatusBadRequest {
				level = zapcore.InfoLevel
			}
			if ce := logger.Check(level, "admin request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

// serve runs both listeners until ctx is cancelled or one of them fails,
// then shuts both down within the configured budget
func (s *server) serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	s.setServing(grpc_health_v1.HealthCheckResponse_SERVING)
	g.Go(func() error {
		s.logger.Info("gRPC server listening", zap.String("addr", grpcLis.Addr().String()))
		if err := s.grpc.Serve(grpcLis); err != nil {
			return fmt.Errorf("serving gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("admin HTTP server listening", zap.String("addr", httpLis.Addr().String()))
		if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	return g.Wait()
}

func (s *server) shutdown() {
	s.logger.Info("shutting down")
	s.setServing(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Warn("admin HTTP shutdown", zap.Error(err))
		_ = s.http.Close()
	}

	// In-flight device flows can run for minutes, so graceful stop is bounded
	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, cancelling in-flight RPCs")
		s.grpc.Stop()
	}
}

func (s *server) setServing(st grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(oauthpb.ServiceName, st)
}
