package main

import (
	"bytes"
	"context"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
)

const issuedToken = "access-token-0123456789"

// gateway issues one token and forgets it once revoked
type gateway struct {
	oauthpb.UnimplementedOAuthServiceServer

	mu      sync.Mutex
	revoked bool
	fail    bool
}

func (g *gateway) Authenticate(_ *oauthpb.Empty, stream oauthpb.OAuthService_AuthenticateServer) error {
	if err := stream.Send(&oauthpb.AuthResponse{Message: "Go to https://idp/device?user_code=ABCD to complete login"}); err != nil {
		return err
	}
	if g.fail {
		return status.Error(codes.Internal, "upstream call failed")
	}
	if err := stream.Send(&oauthpb.AuthResponse{Message: "Waiting for response..."}); err != nil {
		return err
	}
	return stream.Send(&oauthpb.AuthResponse{Message: "Success", AccessToken: issuedToken, RefreshToken: "refresh-token-9876543210"})
}

func (g *gateway) Introspect(_ context.Context, req *oauthpb.IntrospectRequest) (*oauthpb.IntrospectResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &oauthpb.IntrospectResponse{Active: req.Token == issuedToken && !g.revoked}, nil
}

func (g *gateway) Revoke(_ context.Context, _ *oauthpb.RevokeRequest) (*oauthpb.Empty, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.revoked = true
	return &oauthpb.Empty{}, nil
}

func (g *gateway) UserInfo(_ context.Context, req *oauthpb.UserInfoRequest) (*oauthpb.UserInfoResponse, error) {
	return &oauthpb.UserInfoResponse{Info: `{"sub":"alice"}`}, nil
}

func startGateway(t *testing.T, g *gateway) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := grpc.NewServer()
	oauthpb.RegisterOAuthServiceServer(s, g)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)
	return lis.Addr().String()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSession(t *testing.T) {
	addr := startGateway(t, &gateway{})

	out, err := execute(t, "--addr", addr, "--timeout", "10s")
	require.NoError(t, err)

	want := "Go to https://idp/device?user_code=ABCD to complete login\n" +
		"Waiting for response...\n" +
		"Success\n" +
		"access_token: acc***6789\n" +
		"refresh_token: ref***3210\n" +
		"active: true\n" +
		"userinfo: {\"sub\":\"alice\"}\n" +
		"revoked\n" +
		"active after revoke: false\n"
	assert.Equal(t, want, out)
}

func TestSessionReveal(t *testing.T) {
	addr := startGateway(t, &gateway{})

	out, err := execute(t, "--addr", addr, "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "access_token: "+issuedToken+"\n")
}

func TestSessionStopsOnFlowError(t *testing.T) {
	g := &gateway{fail: true}
	addr := startGateway(t, g)

	out, err := execute(t, "--addr", addr)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, out, "complete login")
	assert.NotContains(t, out, "revoked")
}

func TestTokenSubcommands(t *testing.T) {
	addr := startGateway(t, &gateway{})

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"introspect", issuedToken}, want: "active: true\n"},
		{args: []string{"introspect", "other"}, want: "active: false\n"},
		{args: []string{"userinfo", issuedToken}, want: "{\"sub\":\"alice\"}\n"},
		{args: []string{"login"}, want: "access_token: acc***6789\nrefresh_token: ref***3210\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := execute(t, append(tt.args, "--addr", addr)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestLoginMasksTokensUnlessRevealed(t *testing.T) {
	addr := startGateway(t, &gateway{})

	out, err := execute(t, "login", "--addr", addr)
	require.NoError(t, err)
	assert.NotContains(t, out, issuedToken)
	assert.NotContains(t, out, "refresh-token-9876543210")

	for _, args := range [][]string{
		{"login", "--reveal", "--addr", addr},
		{"--reveal", "login", "--addr", addr},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Contains(t, out, "access_token: "+issuedToken+"\n", "args %v", args)
		assert.Contains(t, out, "refresh_token: refresh-token-9876543210\n", "args %v", args)
	}
}

func TestRevokeSubcommand(t *testing.T) {
	g := &gateway{}
	addr := startGateway(t, g)

	out, err := execute(t, "revoke", issuedToken, "--addr", addr)
	require.NoError(t, err)
	assert.Equal(t, "revoked\n", out)

	out, err = execute(t, "introspect", issuedToken, "--addr", addr)
	require.NoError(t, err)
	assert.Equal(t, "active: false\n", out)
}

func TestTokenArgumentRequired(t *testing.T) {
	_, err := execute(t, "introspect")
	assert.Error(t, err)
}
