// Package config loads the gateway's configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the gateway. All values come from
// MCPGATE_* environment variables, with defaults matching the reference
// deployment.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// ServiceName and ServiceVersion are reported in the initialize
	// handshake.
	ServiceName    string
	ServiceVersion string

	// SSEPath serves the stream transport, MessagePath the unary one.
	SSEPath     string
	MessagePath string

	// PingInterval is the period of the stream keep-alive comment.
	PingInterval time.Duration

	// ExecutionCeiling is the hosting platform's hard limit on one stream
	// connection; ShutdownMargin is how long before that ceiling the
	// stream announces timeout and closes.
	ExecutionCeiling time.Duration
	ShutdownMargin   time.Duration
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("mcpgate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("service.name", "mcpgate")
	v.SetDefault("service.version", "0.1.0")
	v.SetDefault("sse.path", "/api/sse")
	v.SetDefault("message.path", "/api/messages")
	v.SetDefault("ping.interval", 15*time.Second)
	v.SetDefault("execution.ceiling", 60*time.Second)
	v.SetDefault("shutdown.margin", 5*time.Second)

	cfg := Config{
		Addr:             v.GetString("addr"),
		ServiceName:      v.GetString("service.name"),
		ServiceVersion:   v.GetString("service.version"),
		SSEPath:          v.GetString("sse.path"),
		MessagePath:      v.GetString("message.path"),
		PingInterval:     v.GetDuration("ping.interval"),
		ExecutionCeiling: v.GetDuration("execution.ceiling"),
		ShutdownMargin:   v.GetDuration("shutdown.margin"),
	}

	if cfg.PingInterval <= 0 {
		return Config{}, fmt.Errorf("ping interval must be positive, got %s", cfg.PingInterval)
	}
	if cfg.ShutdownMargin <= 0 || cfg.ShutdownMargin >= cfg.ExecutionCeiling {
		return Config{}, fmt.Errorf("shutdown margin %s must be positive and below the execution ceiling %s",
			cfg.ShutdownMargin, cfg.ExecutionCeiling)
	}

	return cfg, nil
}
