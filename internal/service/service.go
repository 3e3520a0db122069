// Package service implements oauthservice.OAuthService on top of the device
// flow driver and token operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc/peer"

	"github.com/wrale/oauth2-device-grpc/internal/deviceflow"
	"github.com/wrale/oauth2-device-grpc/internal/oauth"
	"github.com/wrale/oauth2-device-grpc/internal/ratelimit"
	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
)

// Flow starts device flow attempts
type Flow interface {
	Authenticate(ctx context.Context) (*deviceflow.Attempt, error)
}

// Tokens runs token operations
type Tokens interface {
	Introspect(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	UserInfo(ctx context.Context, token string) (string, error)
}

// FlowObserver records device flow progress
type FlowObserver interface {
	FlowStarted()
	FlowFinished(outcome string)
	EventSent(kind string)
	RateLimited()
}

// Flow outcomes reported to FlowObserver
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeExpired   = "expired"
)

// Server implements oauthpb.OAuthServiceServer
type Server struct {
	oauthpb.UnimplementedOAuthServiceServer

	flow     Flow
	tokens   Tokens
	limiter  ratelimit.Limiter
	observer FlowObserver
	logger   *zap.Logger
}

var _ oauthpb.OAuthServiceServer = (*Server)(nil)

// Option configures a Server
type Option func(*Server)

// WithLimiter enables per-peer limits on Authenticate
func WithLimiter(l ratelimit.Limiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithFlowObserver registers an observer for device flow progress
func WithFlowObserver(o FlowObserver) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithLogger sets the server logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates the gRPC service implementation
func New(flow Flow, tokens Tokens, opts ...Option) *Server {
	s := &Server{
		flow:     flow,
		tokens:   tokens,
		observer: nopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate runs one device flow and streams its progress. The stream
// ends after the Success message, or with an error status when the flow
// aborts.
func (s *Server) Authenticate(_ *oauthpb.Empty, stream oauthpb.OAuthService_AuthenticateServer) error {
	ctx := stream.Context()
	if err := s.checkRateLimit(ctx); err != nil {
		return toStatus(err)
	}

	attempt, err := s.flow.Authenticate(ctx)
	if err != nil {
		return toStatus(err)
	}
	s.observer.FlowStarted()

	for ev := range attempt.Events() {
		if err := stream.Send(&oauthpb.AuthResponse{
			Message:      ev.Message(),
			AccessToken:  ev.Tokens.AccessToken,
			RefreshToken: ev.Tokens.RefreshToken,
		}); err != nil {
			attempt.Close()
			for range attempt.Events() {
			}
			s.observer.FlowFinished(OutcomeCancelled)
			s.logger.Debug("caller went away during device flow", zap.Error(err))
			return err
		}
		s.observer.EventSent(ev.Kind.String())
	}

	err = attempt.Err()
	s.observer.FlowFinished(outcome(err))
	if err != nil {
		s.logger.Info("device flow ended without tokens",
			zap.String("outcome", outcome(err)),
			zap.String("upstream_operation", upstreamOperation(err)),
			zap.Error(err))
	}
	return toStatus(err)
}

func (s *Server) checkRateLimit(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}

	key := peerHost(ctx)
	ok, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open when the limiter backend errors
		s.logger.Warn("rate limiter unavailable, allowing request", zap.String("peer", key), zap.Error(err))
		return nil
	}
	if !ok {
		s.observer.RateLimited()
		return fmt.Errorf("authenticate from %s: %w", key, ratelimit.ErrLimitExceeded)
	}
	return nil
}

// Introspect reports whether a token is active
func (s *Server) Introspect(ctx context.Context, req *oauthpb.IntrospectRequest) (*oauthpb.IntrospectResponse, error) {
	if req.Token == "" {
		return nil, missingToken()
	}
	active, err := s.tokens.Introspect(ctx, req.Token)
	if err != nil {
		return nil, toStatus(err)
	}
	return &oauthpb.IntrospectResponse{Active: active}, nil
}

// Revoke revokes a token
func (s *Server) Revoke(ctx context.Context, req *oauthpb.RevokeRequest) (*oauthpb.Empty, error) {
	if req.Token == "" {
		return nil, missingToken()
	}
	if err := s.tokens.Revoke(ctx, req.Token); err != nil {
		return nil, toStatus(err)
	}
	return &oauthpb.Empty{}, nil
}

// UserInfo returns the upstream user-info document for a token
func (s *Server) UserInfo(ctx context.Context, req *oauthpb.UserInfoRequest) (*oauthpb.UserInfoResponse, error) {
	if req.Token == "" {
		return nil, missingToken()
	}
	info, err := s.tokens.UserInfo(ctx, req.Token)
	if err != nil {
		return nil, toStatus(err)
	}
	return &oauthpb.UserInfoResponse{Info: info}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, deviceflow.ErrFlowExpired):
		return OutcomeExpired
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}

// peerHost identifies the caller by address without its port
func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

type nopObserver struct{}

func (nopObserver) FlowStarted()        {}
func (nopObserver) FlowFinished(string) {}
func (nopObserver) EventSent(string)    {}
func (nopObserver) RateLimited()        {}

// upstreamOperation names the upstream call behind err, if any
func upstreamOperation(err error) string {
	var uerr *oauth.UpstreamError
	if errors.As(err, &uerr) {
		return uerr.Operation
	}
	var terr *oauth.TransportError
	if errors.As(err, &terr) {
		return terr.Operation
	}
	return ""
}
