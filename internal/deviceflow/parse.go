package deviceflow

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
)

// deviceAuthorizationResponse mirrors RFC 8628 section 3.2. interval is
// kept raw because some providers send it as a string.
type deviceAuthorizationResponse struct {
	DeviceCode              string          `json:"device_code"`
	VerificationURI         string          `json:"verification_uri"`
	VerificationURIComplete string          `json:"verification_uri_complete"`
	Interval                json.RawMessage `json:"interval"`
}

func parseDeviceAuthorization(body []byte) (DeviceAuthorization, error) {
	var raw deviceAuthorizationResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return DeviceAuthorization{}, oauth.InvalidResponse(oauth.EndpointDeviceAuthorize, "malformed JSON", body)
	}
	if raw.DeviceCode == "" {
		return DeviceAuthorization{}, oauth.InvalidResponse(oauth.EndpointDeviceAuthorize, "missing device_code", body)
	}

	verificationURL := raw.VerificationURIComplete
	if verificationURL == "" {
		verificationURL = raw.VerificationURI
	}
	if verificationURL == "" {
		return DeviceAuthorization{}, oauth.InvalidResponse(oauth.EndpointDeviceAuthorize, "missing verification_uri_complete", body)
	}

	return DeviceAuthorization{
		DeviceCode:      raw.DeviceCode,
		VerificationURL: verificationURL,
		PollingInterval: parseInterval(raw.Interval),
	}, nil
}

// maxIntervalSeconds is the largest interval that still fits a Duration
const maxIntervalSeconds = math.MaxInt64 / int64(time.Second)

// parseInterval accepts a JSON number or a numeric string, in seconds.
// Anything else, any non-positive value and any value too large for a
// Duration yields DefaultPollInterval.
func parseInterval(raw json.RawMessage) time.Duration {
	if len(raw) == 0 {
		return DefaultPollInterval
	}

	var seconds int64
	var n float64
	var s string
	switch {
	case json.Unmarshal(raw, &n) == nil:
		if n < 1 || n >= float64(maxIntervalSeconds)+1 {
			return DefaultPollInterval
		}
		seconds = int64(n)
	case json.Unmarshal(raw, &s) == nil:
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return DefaultPollInterval
		}
		seconds = v
	default:
		return DefaultPollInterval
	}

	if seconds <= 0 || seconds > maxIntervalSeconds {
		return DefaultPollInterval
	}
	return time.Duration(seconds) * time.Second
}

func parseTokenPair(body []byte) (TokenPair, error) {
	var tok oauth2.Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return TokenPair{}, oauth.InvalidResponse(oauth.EndpointToken, "malformed JSON", body)
	}
	if tok.AccessToken == "" {
		return TokenPair{}, oauth.InvalidResponse(oauth.EndpointToken, "missing access_token", body)
	}
	return TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}, nil
}

// pendingReason extracts the OAuth error code of a 400 poll response for logs
func pendingReason(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return "unknown"
	}
	return e.Error
}
