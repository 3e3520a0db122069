package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RPCObserver records completed calls
type RPCObserver interface {
	ObserveRPC(method, code string, elapsed time.Duration)
}

// UnaryInterceptor logs and measures unary calls
func UnaryInterceptor(logger *zap.Logger, obs RPCObserver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		record(logger, obs, info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// StreamInterceptor logs and measures streaming calls
func StreamInterceptor(logger *zap.Logger, obs RPCObserver) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		record(logger, obs, info.FullMethod, err, time.Since(start))
		return err
	}
}

func record(logger *zap.Logger, obs RPCObserver, method string, err error, elapsed time.Duration) {
	code := status.Code(err)
	if obs != nil {
		obs.ObserveRPC(method, code.String(), elapsed)
	}

	level := zapcore.InfoLevel
	switch code {
	case codes.OK, codes.Canceled:
		level = zapcore.DebugLevel
	case codes.Internal, codes.Unknown:
		level = zapcore.ErrorLevel
	}
	if ce := logger.Check(level, "rpc completed"); ce != nil {
		fields := []zap.Field{
			zap.String("method", method),
			zap.Stringer("code", code),
			zap.Duration("duration", elapsed),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		ce.Write(fields...)
	}
}
