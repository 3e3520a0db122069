// Package deviceflow drives the client side of the OAuth 2.0 Device
// Authorization Grant (RFC 8628) against an upstream identity provider.
package deviceflow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SleepFunc waits for d or until ctx is done, whichever comes first
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Driver
type Option func(*Driver)

// WithSleep replaces the wait between polls
func WithSleep(fn SleepFunc) Option {
	return func(d *Driver) {
		d.sleep = fn
	}
}

// WithMaxDuration bounds a whole attempt, device authorization included.
// Zero means the attempt runs until success, upstream failure or cancellation.
func WithMaxDuration(max time.Duration) Option {
	return func(d *Driver) {
		d.maxDuration = max
	}
}

// WithLogger sets the driver logger
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithTracerProvider sets the provider used to trace attempts
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Driver) {
		d.tracer = tp.Tracer(tracerName)
	}
}
