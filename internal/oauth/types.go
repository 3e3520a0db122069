// Package oauth provides the HTTP client for the upstream identity provider
// and the error taxonomy shared by the device flow and token operations.
package oauth

import (
	"net/url"
	"strings"
	"time"
)

// Endpoint names used in errors, logs and metrics
const (
	EndpointDeviceAuthorize = "device_authorize"
	EndpointToken           = "token"
	EndpointIntrospect      = "introspect"
	EndpointRevoke          = "revoke"
	EndpointUserInfo        = "userinfo"
	EndpointHealth          = "health"
)

// Response is the raw result of an upstream call
type Response struct {
	StatusCode int
	Body       []byte
}

// Credentials is a username/password pair sent with HTTP basic auth
type Credentials struct {
	Username string
	Password string
}

// Paths holds the upstream endpoint paths relative to the base URL
type Paths struct {
	DeviceAuthorize string
	Token           string
	Introspect      string
	Revoke          string
	UserInfo        string
	Health          string
}

// DefaultPaths returns the WSO2-style endpoint layout
func DefaultPaths() Paths {
	return Paths{
		DeviceAuthorize: "/oauth2/device_authorize",
		Token:           "/oauth2/token",
		Introspect:      "/oauth2/introspect",
		Revoke:          "/oauth2/revoke",
		UserInfo:        "/oauth2/userinfo",
		Health:          "/oauth2/token/.well-known/openid-configuration",
	}
}

// Endpoints holds the absolute upstream URLs
type Endpoints struct {
	DeviceAuthorize string
	Token           string
	Introspect      string
	Revoke          string
	UserInfo        string
	Health          string
}

// Resolve joins every path onto baseURL
func (p Paths) Resolve(baseURL string) (Endpoints, error) {
	base := strings.TrimSuffix(baseURL, "/")
	join := func(path string) (string, error) {
		if path == "" {
			return "", nil
		}
		return url.JoinPath(base, path)
	}

	var (
		e   Endpoints
		err error
	)
	targets := []struct {
		path string
		dst  *string
	}{
		{p.DeviceAuthorize, &e.DeviceAuthorize},
		{p.Token, &e.Token},
		{p.Introspect, &e.Introspect},
		{p.Revoke, &e.Revoke},
		{p.UserInfo, &e.UserInfo},
		{p.Health, &e.Health},
	}
	for _, t := range targets {
		if *t.dst, err = join(t.path); err != nil {
			return Endpoints{}, err
		}
	}
	return e, nil
}

// Config holds upstream client configuration
type Config struct {
	BaseURL            string
	Paths              Paths
	ClientID           string
	ClientSecret       string
	Admin              Credentials
	Scope              string
	InsecureSkipVerify bool
	Timeout            time.Duration
}
