// Package config loads judge service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// SandboxType selects the isolation tool variant built into the Manager.
type SandboxType string

const (
	SandboxIsolate   SandboxType = "isolate"
	SandboxIsolateCg SandboxType = "isolate-cg"
	SandboxNsjail    SandboxType = "nsjail"
)

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Host string
	Port int
}

// ServiceConfig configures the Service and its Manager.
type ServiceConfig struct {
	EnableBgWorkerLoop      bool
	MaxQueueSize            uint32
	MaxConcurrentExecutions uint32
	MaxPrewarmedSandboxes   uint32
	SandboxType             SandboxType
}

// Config is the full set of env-derived settings for the judge process.
type Config struct {
	Server  ServerConfig
	Service ServiceConfig
}

// Load reads configuration from the environment, applying the same
// defaults the reference service shipped.
func Load() (Config, error) {
	sandboxType := SandboxType(envOr("SANDBOX_TYPE", string(SandboxIsolate)))
	switch sandboxType {
	case SandboxIsolate, SandboxIsolateCg:
	case SandboxNsjail:
		return Config{}, fmt.Errorf("config: SANDBOX_TYPE=nsjail is reserved and not yet implemented")
	default:
		return Config{}, fmt.Errorf("config: unknown SANDBOX_TYPE %q", sandboxType)
	}

	return Config{
		Server: ServerConfig{
			Host: envOr("HOST", "0.0.0.0"),
			Port: envIntOr("PORT", 8080),
		},
		Service: ServiceConfig{
			EnableBgWorkerLoop:      envBoolOr("ENABLE_BG_WORKER_LOOP", true),
			MaxQueueSize:            uint32(envIntOr("MAX_QUEUE_SIZE", 100)),
			MaxConcurrentExecutions: uint32(envIntOr("MAX_CONCURRENT_EXECUTIONS", 20)),
			MaxPrewarmedSandboxes:   uint32(envIntOr("MAX_PREWARMED_SANDBOXES", 1000)),
			SandboxType:             sandboxType,
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
