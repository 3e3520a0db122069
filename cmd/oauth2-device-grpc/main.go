// Package main runs the OAuth 2.0 device flow gRPC gateway
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wrale/oauth2-device-grpc/cmd/oauth2-device-grpc/handlers/health"
	"github.com/wrale/oauth2-device-grpc/internal/deviceflow"
	"github.com/wrale/oauth2-device-grpc/internal/oauth"
	"github.com/wrale/oauth2-device-grpc/internal/observability"
	"github.com/wrale/oauth2-device-grpc/internal/ratelimit"
	"github.com/wrale/oauth2-device-grpc/internal/service"
	"github.com/wrale/oauth2-device-grpc/internal/tokens"
)

// Version is set by the build process
var Version = "dev"

const serviceName = "oauth2-device-grpc"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("flushing traces", zap.Error(err))
		}
	}()

	metrics := observability.NewMetrics()

	upstream, err := oauth.NewClient(cfg.upstream(),
		oauth.WithObserver(metrics),
		oauth.WithLogger(logger.Named("upstream")),
		oauth.WithBreaker(cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout),
	)
	if err != nil {
		return fmt.Errorf("creating upstream client: %w", err)
	}

	driver := deviceflow.NewDriver(upstream,
		deviceflow.WithMaxDuration(cfg.MaxFlowDuration),
		deviceflow.WithLogger(logger.Named("deviceflow")),
	)
	tokenOps := tokens.NewService(upstream,
		tokens.WithPropagateRevokeErrors(cfg.PropagateRevokeErrors),
		tokens.WithLogger(logger.Named("tokens")),
	)

	checkers := map[string]health.Checker{"upstream": upstream}
	opts := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithFlowObserver(metrics),
	}

	limiter, closeLimiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()
	if limiter != nil {
		opts = append(opts, service.WithLimiter(limiter))
		checkers["rate_limiter"] = limiter
	}

	svc := service.New(driver, tokenOps, opts...)
	srv := newServer(cfg, svc, checkers, metrics, logger)

	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("listening on gRPC port: %w", err)
	}
	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("listening on HTTP port: %w", err)
	}

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("idp", cfg.IDPBaseURL),
		zap.String("client_id", cfg.ClientID),
		zap.String("client_secret", oauth.MaskToken(cfg.ClientSecret)),
		zap.Int("auth_rate_limit", cfg.AuthRateLimit),
		zap.Duration("max_flow_duration", cfg.MaxFlowDuration))

	return srv.serve(ctx, grpcLis, httpLis)
}

// newLimiter returns nil when rate limiting is disabled
func newLimiter(cfg Config) (ratelimit.Limiter, func(), error) {
	noop := func() {}
	if cfg.AuthRateLimit == 0 {
		return nil, noop, nil
	}
	if cfg.RedisURL == "" {
		return ratelimit.NewMemory(cfg.AuthRateLimit, cfg.AuthRateWindow), noop, nil
	}

	r, err := ratelimit.NewRedisFromURL(cfg.RedisURL, cfg.AuthRateLimit, cfg.AuthRateWindow)
	if err != nil {
		return nil, noop, err
	}
	return r, func() { _ = r.Close() }, nil
}
