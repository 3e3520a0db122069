package oauthpb

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

type echoServer struct {
	UnimplementedOAuthServiceServer

	mu      sync.Mutex
	revoked []string
}

func (s *echoServer) Authenticate(_ *Empty, stream OAuthService_AuthenticateServer) error {
	for _, m := range []*AuthResponse{
		{Message: "Go to https://idp/device to complete login"},
		{Message: "Waiting for response..."},
		{Message: "Success", AccessToken: "at", RefreshToken: "rt"},
	} {
		if err := stream.Send(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *echoServer) Introspect(_ context.Context, req *IntrospectRequest) (*IntrospectResponse, error) {
	return &IntrospectResponse{Active: req.GetToken() == "live"}, nil
}

func (s *echoServer) Revoke(_ context.Context, req *RevokeRequest) (*Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, req.GetToken())
	return &Empty{}, nil
}

func (s *echoServer) UserInfo(_ context.Context, req *UserInfoRequest) (*UserInfoResponse, error) {
	if req.GetToken() == "" {
		return nil, status.Error(codes.InvalidArgument, "token is required")
	}
	return &UserInfoResponse{Info: `{"sub":"` + req.GetToken() + `"}`}, nil
}

// introspectOnly leaves every other method to the embedded defaults
type introspectOnly struct {
	UnimplementedOAuthServiceServer
}

func (introspectOnly) Introspect(context.Context, *IntrospectRequest) (*IntrospectResponse, error) {
	return &IntrospectResponse{Active: true}, nil
}

func startServer(t *testing.T, srv OAuthServiceServer, opts ...grpc.ServerOption) OAuthServiceClient {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := grpc.NewServer(opts...)
	RegisterOAuthServiceServer(s, srv)
	go func() { _ = s.Serve(listener) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewOAuthServiceClient(conn)
}

func TestSchemaIsRegistered(t *testing.T) {
	desc, err := protoregistry.GlobalFiles.FindDescriptorByName(ServiceName)
	require.NoError(t, err)

	svc, ok := desc.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	assert.Equal(t, OAuthService_ServiceDesc.ServiceName, string(svc.FullName()))
	assert.Equal(t, OAuthService_ServiceDesc.Metadata, svc.ParentFile().Path())

	auth := svc.Methods().ByName("Authenticate")
	require.NotNil(t, auth)
	assert.True(t, auth.IsStreamingServer())
	assert.False(t, auth.IsStreamingClient())
	assert.Equal(t, protoreflect.FullName("oauthservice.AuthResponse"), auth.Output().FullName())

	for _, m := range OAuthService_ServiceDesc.Methods {
		md := svc.Methods().ByName(protoreflect.Name(m.MethodName))
		require.NotNil(t, md, m.MethodName)
		assert.False(t, md.IsStreamingServer(), m.MethodName)
	}
	assert.Equal(t, protoreflect.FullName("oauthservice.Empty"), svc.Methods().ByName("Revoke").Output().FullName())
	assert.Equal(t, "github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb",
		File_oauthservice_service_proto.Options().(*descriptorpb.FileOptions).GetGoPackage())
}

func TestFieldNumbers(t *testing.T) {
	tests := []struct {
		msg    proto.Message
		field  protoreflect.Name
		number protoreflect.FieldNumber
		kind   protoreflect.Kind
	}{
		{msg: &AuthResponse{}, field: "message", number: 1, kind: protoreflect.StringKind},
		{msg: &AuthResponse{}, field: "access_token", number: 2, kind: protoreflect.StringKind},
		{msg: &AuthResponse{}, field: "refresh_token", number: 3, kind: protoreflect.StringKind},
		{msg: &IntrospectRequest{}, field: "token", number: 1, kind: protoreflect.StringKind},
		{msg: &IntrospectResponse{}, field: "active", number: 1, kind: protoreflect.BoolKind},
		{msg: &RevokeRequest{}, field: "token", number: 1, kind: protoreflect.StringKind},
		{msg: &UserInfoRequest{}, field: "token", number: 1, kind: protoreflect.StringKind},
		{msg: &UserInfoResponse{}, field: "info", number: 1, kind: protoreflect.StringKind},
	}

	for _, tt := range tests {
		desc := tt.msg.ProtoReflect().Descriptor()
		t.Run(string(desc.Name())+"."+string(tt.field), func(t *testing.T) {
			fd := desc.Fields().ByName(tt.field)
			require.NotNil(t, fd)
			assert.Equal(t, tt.number, fd.Number())
			assert.Equal(t, tt.kind, fd.Kind())
		})
	}
	assert.Zero(t, (&Empty{}).ProtoReflect().Descriptor().Fields().Len())
}

func TestWireMatchesDescriptor(t *testing.T) {
	want := &AuthResponse{Message: "Success", AccessToken: "a", RefreshToken: "r"}
	raw, err := proto.Marshal(want)
	require.NoError(t, err)

	// A message built only from the registered descriptor decodes the same bytes
	dyn := dynamicpb.NewMessage(want.ProtoReflect().Descriptor())
	require.NoError(t, proto.Unmarshal(raw, dyn))
	assert.Equal(t, "a", dyn.Get(dyn.Descriptor().Fields().ByName("access_token")).String())

	again, err := proto.Marshal(dyn)
	require.NoError(t, err)
	got := &AuthResponse{}
	require.NoError(t, proto.Unmarshal(again, got))
	assert.True(t, proto.Equal(want, got), "got %v", got)
}

func TestUnaryCalls(t *testing.T) {
	srv := &echoServer{}
	client := startServer(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ir, err := client.Introspect(ctx, &IntrospectRequest{Token: "live"})
	require.NoError(t, err)
	assert.True(t, ir.GetActive())

	ir, err = client.Introspect(ctx, &IntrospectRequest{Token: "dead"})
	require.NoError(t, err)
	assert.False(t, ir.GetActive())

	_, err = client.Revoke(ctx, &RevokeRequest{Token: "t1"})
	require.NoError(t, err)
	srv.mu.Lock()
	assert.Equal(t, []string{"t1"}, srv.revoked)
	srv.mu.Unlock()

	ui, err := client.UserInfo(ctx, &UserInfoRequest{Token: "alice"})
	require.NoError(t, err)
	assert.Equal(t, `{"sub":"alice"}`, ui.GetInfo())

	_, err = client.UserInfo(ctx, &UserInfoRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAuthenticateStream(t *testing.T) {
	client := startServer(t, &echoServer{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Authenticate(ctx, &Empty{})
	require.NoError(t, err)

	var got []*AuthResponse
	for {
		m, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, m)
	}

	require.Len(t, got, 3)
	assert.Equal(t, "Go to https://idp/device to complete login", got[0].GetMessage())
	assert.Equal(t, "Waiting for response...", got[1].GetMessage())
	assert.True(t, proto.Equal(&AuthResponse{Message: "Success", AccessToken: "at", RefreshToken: "rt"}, got[2]), "got %v", got[2])
}

func TestUnimplementedMethods(t *testing.T) {
	client := startServer(t, introspectOnly{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ir, err := client.Introspect(ctx, &IntrospectRequest{Token: "x"})
	require.NoError(t, err)
	assert.True(t, ir.GetActive())

	_, err = client.Revoke(ctx, &RevokeRequest{Token: "x"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
	_, err = client.UserInfo(ctx, &UserInfoRequest{Token: "x"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))

	stream, err := client.Authenticate(ctx, &Empty{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestInterceptorSeesTypedMessages(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		seen   []proto.Message
	)
	intercept := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		mu.Lock()
		method = info.FullMethod
		seen = append(seen, req.(proto.Message), resp.(proto.Message))
		mu.Unlock()
		return resp, err
	}
	client := startServer(t, &echoServer{}, grpc.UnaryInterceptor(intercept))

	_, err := client.Introspect(context.Background(), &IntrospectRequest{Token: "live"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, OAuthService_Introspect_FullMethodName, method)
	require.Len(t, seen, 2)
	assert.True(t, proto.Equal(&IntrospectRequest{Token: "live"}, seen[0]))
	assert.True(t, proto.Equal(&IntrospectResponse{Active: true}, seen[1]))
}
