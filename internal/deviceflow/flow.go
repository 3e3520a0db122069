package deviceflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
)

const (
	// DefaultPollInterval is used when the upstream omits a usable interval
	// per RFC 8628 section 3.2
	DefaultPollInterval = 5 * time.Second

	tracerName = "github.com/wrale/oauth2-device-grpc/internal/deviceflow"
)

// Upstream is the part of the identity provider client the driver needs
type Upstream interface {
	DeviceAuthorize(ctx context.Context) (*oauth.Response, error)
	PollToken(ctx context.Context, deviceCode string) (*oauth.Response, error)
}

// Driver runs device authorization attempts. It holds no per-attempt state
// and is safe for concurrent use.
type Driver struct {
	upstream    Upstream
	sleep       SleepFunc
	maxDuration time.Duration
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewDriver creates a device flow driver with provided options
func NewDriver(upstream Upstream, opts ...Option) *Driver {
	d := &Driver{
		upstream: upstream,
		sleep:    sleepContext,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Authenticate obtains a device code and starts polling for tokens.
//
// If the device authorization request fails, no Attempt is returned and no
// events are produced. Otherwise the Attempt emits Prompt first, then zero
// or more Waiting events, then either Success or nothing further with the
// cause available from Err. Cancelling ctx stops polling before the next
// upstream call.
func (d *Driver) Authenticate(ctx context.Context) (*Attempt, error) {
	ctx, cancel := d.attemptContext(ctx)
	ctx, span := d.tracer.Start(ctx, "deviceflow.Authenticate")

	auth, err := d.requestAuthorization(ctx)
	if err != nil {
		err = d.normalize(err)
		endSpan(span, err)
		cancel()
		d.logger.Warn("device authorization failed", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int64("deviceflow.interval_seconds", int64(auth.PollingInterval/time.Second)))
	d.logger.Info("device authorization obtained",
		zap.String("verification_url", auth.VerificationURL),
		zap.Duration("interval", auth.PollingInterval))

	a := &Attempt{
		auth:   auth,
		events: make(chan Event),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		err := d.normalize(d.poll(ctx, a, span))
		endSpan(span, err)
		if err != nil {
			d.logger.Info("device flow aborted", zap.Int("polls", a.polls), zap.Error(err))
		}
		a.finish(err)
	}()
	return a, nil
}

func (d *Driver) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.maxDuration > 0 {
		return context.WithTimeout(ctx, d.maxDuration)
	}
	return context.WithCancel(ctx)
}

func (d *Driver) requestAuthorization(ctx context.Context) (DeviceAuthorization, error) {
	resp, err := d.upstream.DeviceAuthorize(ctx)
	if err != nil {
		return DeviceAuthorization{}, fmt.Errorf("requesting device code: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return DeviceAuthorization{}, oauth.NewUpstreamError(oauth.EndpointDeviceAuthorize, resp)
	}
	return parseDeviceAuthorization(resp.Body)
}

// poll emits Prompt and runs the polling loop until a terminal state
func (d *Driver) poll(ctx context.Context, a *Attempt, span trace.Span) error {
	if err := a.emit(ctx, span, Event{Kind: EventPrompt, VerificationURL: a.auth.VerificationURL}); err != nil {
		return err
	}

	for {
		if err := d.sleep(ctx, a.auth.PollingInterval); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		a.polls++
		resp, err := d.upstream.PollToken(ctx, a.auth.DeviceCode)
		if err != nil {
			return fmt.Errorf("polling token endpoint: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			tokens, err := parseTokenPair(resp.Body)
			if err != nil {
				return err
			}
			d.logger.Info("device flow completed", zap.Int("polls", a.polls))
			return a.emit(ctx, span, Event{Kind: EventSuccess, Tokens: tokens})

		case http.StatusBadRequest:
			// Any 400 is treated as authorization_pending, slow_down included
			d.logger.Debug("authorization pending",
				zap.Int("poll", a.polls),
				zap.String("upstream_error", pendingReason(resp.Body)))
			if err := a.emit(ctx, span, Event{Kind: EventWaiting}); err != nil {
				return err
			}

		default:
			return oauth.NewUpstreamError(oauth.EndpointToken, resp)
		}
	}
}

// normalize tags deadline errors caused by the driver's own max duration
func (d *Driver) normalize(err error) error {
	if err != nil && d.maxDuration > 0 && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrFlowExpired) {
		return fmt.Errorf("%w after %s: %w", ErrFlowExpired, d.maxDuration, err)
	}
	return err
}

// Attempt is a single running device flow
type Attempt struct {
	auth   DeviceAuthorization
	events chan Event
	cancel context.CancelFunc
	polls  int

	mu  sync.Mutex
	err error
}

// Authorization returns the device authorization this attempt polls for
func (a *Attempt) Authorization() DeviceAuthorization {
	return a.auth
}

// Events returns the progress stream. The channel is unbuffered and is
// closed once the attempt reaches a terminal state.
func (a *Attempt) Events() <-chan Event {
	return a.events
}

// Err returns the terminal error once Events has been closed. It returns
// nil after Success and nil while the attempt is still running.
func (a *Attempt) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Close stops the attempt. Pending sends are abandoned and no further
// upstream calls are made.
func (a *Attempt) Close() {
	a.cancel()
}

func (a *Attempt) emit(ctx context.Context, span trace.Span, ev Event) error {
	select {
	case a.events <- ev:
		span.AddEvent(ev.Kind.String())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Attempt) finish(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
	close(a.events)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
