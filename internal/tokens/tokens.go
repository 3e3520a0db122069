// Package tokens implements introspection, revocation and user-info lookup
// against the upstream identity provider.
package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
)

// Upstream is the part of the identity provider client token operations need
type Upstream interface {
	Introspect(ctx context.Context, token string) (*oauth.Response, error)
	Revoke(ctx context.Context, token string) (*oauth.Response, error)
	UserInfo(ctx context.Context, token string) (*oauth.Response, error)
}

// Service runs token operations. It keeps no state between calls.
type Service struct {
	upstream         Upstream
	propagateRevokes bool
	logger           *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithPropagateRevokeErrors makes Revoke fail when the upstream answers
// with a non-200 status instead of ignoring it
func WithPropagateRevokeErrors(enabled bool) Option {
	return func(s *Service) {
		s.propagateRevokes = enabled
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates token operations backed by upstream
func NewService(upstream Upstream, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Introspect reports whether the upstream considers token active
func (s *Service) Introspect(ctx context.Context, token string) (bool, error) {
	resp, err := s.upstream.Introspect(ctx, token)
	if err != nil {
		return false, fmt.Errorf("introspecting token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, oauth.NewUpstreamError(oauth.EndpointIntrospect, resp)
	}

	var body struct {
		Active json.RawMessage `json:"active"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return false, oauth.InvalidResponse(oauth.EndpointIntrospect, "malformed JSON", resp.Body)
	}

	active, ok := parseActive(body.Active)
	if !ok {
		return false, oauth.InvalidResponse(oauth.EndpointIntrospect, "missing or non-boolean active", resp.Body)
	}

	s.logger.Debug("token introspected",
		zap.String("token", oauth.MaskToken(token)),
		zap.Bool("active", active))
	return active, nil
}

// parseActive accepts a JSON boolean or a string strconv.ParseBool understands
func parseActive(raw json.RawMessage) (bool, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}
	return b, true
}

// Revoke asks the upstream to revoke token. Unless revoke errors are
// propagated the upstream status is ignored; transport failures always
// surface.
func (s *Service) Revoke(ctx context.Context, token string) error {
	resp, err := s.upstream.Revoke(ctx, token)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if s.propagateRevokes {
			return oauth.NewUpstreamError(oauth.EndpointRevoke, resp)
		}
		s.logger.Warn("ignoring revoke failure",
			zap.String("token", oauth.MaskToken(token)),
			zap.Int("status", resp.StatusCode))
	}
	return nil
}

// UserInfo returns the upstream user-info document verbatim
func (s *Service) UserInfo(ctx context.Context, token string) (string, error) {
	resp, err := s.upstream.UserInfo(ctx, token)
	if err != nil {
		return "", fmt.Errorf("fetching user info: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", oauth.NewUpstreamError(oauth.EndpointUserInfo, resp)
	}
	if !utf8.Valid(resp.Body) {
		return "", oauth.InvalidResponse(oauth.EndpointUserInfo, "body is not valid UTF-8", nil)
	}
	return string(resp.Body), nil
}
