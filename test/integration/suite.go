// Package integration exercises a running gateway over gRPC
package integration

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
)

// Environment variables that point the suite at a deployment
const (
	EnvGRPCAddr    = "INTEGRATION_GRPC_ADDR"
	EnvAdminURL    = "INTEGRATION_ADMIN_URL"
	EnvInteractive = "INTEGRATION_INTERACTIVE"
)

// Timeouts and delays
const (
	ServiceTimeout = 60 * time.Second
	LoginTimeout   = 5 * time.Minute
	RetryInterval  = 2 * time.Second
)

// TestSuite provides shared functionality for integration tests
type TestSuite struct {
	T        *testing.T
	Ctx      context.Context
	Conn     *grpc.ClientConn
	Client   oauthpb.OAuthServiceClient
	HTTP     *http.Client
	AdminURL string
}

// NewSuite connects to the gateway named by INTEGRATION_GRPC_ADDR, skipping
// the test when it is unset
func NewSuite(t *testing.T) *TestSuite {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	addr := os.Getenv(EnvGRPCAddr)
	if addr == "" {
		t.Skipf("%s not set", EnvGRPCAddr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ServiceTimeout)
	t.Cleanup(cancel)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to create client for %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &TestSuite{
		T:        t,
		Ctx:      ctx,
		Conn:     conn,
		Client:   oauthpb.NewOAuthServiceClient(conn),
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		AdminURL: os.Getenv(EnvAdminURL),
	}
}

// WaitForServices waits until the gateway reports SERVING and, when an admin
// URL is configured, its /health endpoint returns 200
func (s *TestSuite) WaitForServices() error {
	health := grpc_health_v1.NewHealthClient(s.Conn)

	ticker := time.NewTicker(RetryInterval)
	defer ticker.Stop()

	for {
		lastErr := s.checkOnce(health)
		if lastErr == nil {
			return nil
		}

		select {
		case <-s.Ctx.Done():
			return fmt.Errorf("timeout waiting for services: %w", lastErr)
		case <-ticker.C:
		}
	}
}

func (s *TestSuite) checkOnce(health grpc_health_v1.HealthClient) error {
	resp, err := health.Check(s.Ctx, &grpc_health_v1.HealthCheckRequest{Service: oauthpb.ServiceName})
	if err != nil {
		return fmt.Errorf("checking gRPC health: %w", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("gRPC health status %s", resp.GetStatus())
	}

	if s.AdminURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(s.Ctx, http.MethodGet, s.AdminURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}
	hresp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("checking admin health: %w", err)
	}
	hresp.Body.Close()
	if hresp.StatusCode != http.StatusOK {
		return fmt.Errorf("admin health returned status %d", hresp.StatusCode)
	}
	return nil
}
