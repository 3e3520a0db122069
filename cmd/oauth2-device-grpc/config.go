package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
	"github.com/wrale/oauth2-device-grpc/internal/observability"
)

// Config holds server configuration loaded from environment variables
type Config struct {
	GRPCPort int `envconfig:"GRPC_PORT" default:"50051"`
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	IDPBaseURL            string        `envconfig:"IDP_BASE_URL" required:"true"`
	DeviceAuthorizePath   string        `envconfig:"IDP_DEVICE_AUTHORIZE_PATH" default:"/oauth2/device_authorize"`
	TokenPath             string        `envconfig:"IDP_TOKEN_PATH" default:"/oauth2/token"`
	IntrospectPath        string        `envconfig:"IDP_INTROSPECT_PATH" default:"/oauth2/introspect"`
	RevokePath            string        `envconfig:"IDP_REVOKE_PATH" default:"/oauth2/revoke"`
	UserInfoPath          string        `envconfig:"IDP_USERINFO_PATH" default:"/oauth2/userinfo"`
	HealthPath            string        `envconfig:"IDP_HEALTH_PATH" default:"/oauth2/token/.well-known/openid-configuration"`
	IDPInsecureSkipVerify bool          `envconfig:"IDP_INSECURE_SKIP_VERIFY" default:"false"`
	UpstreamTimeout       time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`

	ClientID      string `envconfig:"OAUTH_CLIENT_ID" required:"true"`
	ClientSecret  string `envconfig:"OAUTH_CLIENT_SECRET"`
	Scope         string `envconfig:"OAUTH_SCOPE" default:"openid"`
	AdminUsername string `envconfig:"IDP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"IDP_ADMIN_PASSWORD" default:"admin"`

	MaxFlowDuration       time.Duration `envconfig:"MAX_FLOW_DURATION" default:"0"`
	PropagateRevokeErrors bool          `envconfig:"PROPAGATE_REVOKE_ERRORS" default:"false"`

	AuthRateLimit  int           `envconfig:"AUTH_RATE_LIMIT" default:"0"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`
	RedisURL       string        `envconfig:"REDIS_URL"`

	BreakerMaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`
	LogFile  string `envconfig:"LOG_FILE"`

	OTelEndpoint    string        `envconfig:"OTEL_ENDPOINT"`
	GRPCReflection  bool          `envconfig:"GRPC_REFLECTION" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// loadConfig reads and validates the environment
func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.IDPBaseURL == "" {
		return fmt.Errorf("IDP_BASE_URL must not be empty")
	}
	if c.ClientID == "" {
		return fmt.Errorf("OAUTH_CLIENT_ID must not be empty")
	}
	if c.AuthRateLimit < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must not be negative")
	}
	if c.AuthRateLimit > 0 && c.AuthRateWindow <= 0 {
		return fmt.Errorf("AUTH_RATE_WINDOW must be positive when AUTH_RATE_LIMIT is set")
	}
	if c.MaxFlowDuration < 0 {
		return fmt.Errorf("MAX_FLOW_DURATION must not be negative")
	}
	if c.BreakerMaxFailures == 0 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be positive")
	}
	return nil
}

func (c Config) upstream() oauth.Config {
	return oauth.Config{
		BaseURL: c.IDPBaseURL,
		Paths: oauth.Paths{
			DeviceAuthorize: c.DeviceAuthorizePath,
			Token:           c.TokenPath,
			Introspect:      c.IntrospectPath,
			Revoke:          c.RevokePath,
			UserInfo:        c.UserInfoPath,
			Health:          c.HealthPath,
		},
		ClientID:           c.ClientID,
		ClientSecret:       c.ClientSecret,
		Admin:              oauth.Credentials{Username: c.AdminUsername, Password: c.AdminPassword},
		Scope:              c.Scope,
		InsecureSkipVerify: c.IDPInsecureSkipVerify,
		Timeout:            c.UpstreamTimeout,
	}
}

func (c Config) logging() observability.LogConfig {
	return observability.LogConfig{
		Level: c.LogLevel,
		JSON:  c.LogJSON,
		File:  c.LogFile,
	}
}
