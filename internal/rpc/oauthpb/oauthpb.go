// Package oauthpb holds the generated protobuf and gRPC bindings for
// api/oauthservice/service.proto.
package oauthpb

//go:generate protoc -I ../../../api --go_out=. --go_opt=module=github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb --go-grpc_out=. --go-grpc_opt=module=github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb oauthservice/service.proto

// ServiceName is the fully qualified gRPC service name, used for health
// reporting
const ServiceName = "oauthservice.OAuthService"
