package service

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
	"github.com/wrale/oauth2-device-grpc/internal/ratelimit"
)

// ErrorDomain is the ErrorInfo domain of every status this service returns
const ErrorDomain = "oauth2-device-grpc"

// ErrorInfo reasons
const (
	ReasonUpstreamUnreachable     = "UPSTREAM_UNREACHABLE"
	ReasonUpstreamCallFailed      = "UPSTREAM_CALL_FAILED"
	ReasonInvalidUpstreamResponse = "INVALID_UPSTREAM_RESPONSE"
	ReasonRateLimited             = "RATE_LIMITED"
)

// maxDetailBody bounds the upstream body copied into error metadata
const maxDetailBody = 1024

// toStatus converts a domain error into a gRPC status error
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	var (
		uerr *oauth.UpstreamError
		terr *oauth.TransportError
	)
	switch {
	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return withInfo(codes.ResourceExhausted, err.Error(), ReasonRateLimited, nil)

	case errors.As(err, &uerr):
		return withInfo(codes.Internal, err.Error(), ReasonUpstreamCallFailed, map[string]string{
			"operation": uerr.Operation,
			"status":    strconv.Itoa(uerr.StatusCode),
			"body":      truncate(bytes.TrimSpace(uerr.Body)),
		})

	// Checked before deadlines since an HTTP client timeout also matches
	// context.DeadlineExceeded
	case errors.As(err, &terr):
		return withInfo(codes.Internal, err.Error(), ReasonUpstreamUnreachable, map[string]string{
			"operation": terr.Operation,
		})

	case errors.Is(err, oauth.ErrUnreachable):
		return withInfo(codes.Internal, err.Error(), ReasonUpstreamUnreachable, nil)

	case errors.Is(err, oauth.ErrInvalidResponse):
		return withInfo(codes.InvalidArgument, err.Error(), ReasonInvalidUpstreamResponse, nil)

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, validUTF8(err.Error()))

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, validUTF8(err.Error()))
	}

	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, validUTF8(err.Error()))
}

func withInfo(code codes.Code, msg, reason string, metadata map[string]string) error {
	st := status.New(code, validUTF8(msg))
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func missingToken() error {
	st := status.New(codes.InvalidArgument, "token is required")
	detailed, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{{
			Field:       "token",
			Description: "must not be empty",
		}},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// truncate cuts b to maxDetailBody on a rune boundary. Proto strings must be
// valid UTF-8, so invalid sequences are replaced.
func truncate(b []byte) string {
	suffix := ""
	if len(b) > maxDetailBody {
		cut := maxDetailBody
		for cut > 0 && !utf8.RuneStart(b[cut]) {
			cut--
		}
		b, suffix = b[:cut], "..."
	}
	return validUTF8(string(b)) + suffix
}

func validUTF8(s string) string {
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
