// Package configs loads process configuration from the environment via
// viper, following the teacher's all-env, no-file layered config style,
// and separately loads the engine roster — the one persisted-state
// collaborator spec.md calls out — from a JSON file on disk, grounded on
// original_source/cozy-cli/src/main.rs's "cozy-cli-config.json" and its
// EngineConfig shape in original_source/cozy-cli/src/engine/mod.rs.
package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Match     MatchConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Mode string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MatchConfig holds process-wide defaults for matches started over the
// HTTP API; individual requests may override the search depth and the
// clock, each applied to both sides.
type MatchConfig struct {
	RosterPath           string
	DefaultDepth         int
	HandshakeTimeout     time.Duration
	MaxConcurrentMatches int
}

type RateLimitConfig struct {
	MatchStartsPerHour int
}

func Load() *Config {
	viper.SetDefault("APP_MODE", "debug")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "30s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")

	viper.SetDefault("MATCH_ROSTER_PATH", "arbiter-roster.json")
	viper.SetDefault("MATCH_DEFAULT_DEPTH", 15)
	viper.SetDefault("MATCH_HANDSHAKE_TIMEOUT", "10s")
	viper.SetDefault("MATCH_MAX_CONCURRENT", 4)

	viper.SetDefault("RATE_LIMIT_MATCH_STARTS_PER_HOUR", 100)

	viper.AutomaticEnv()

	readTimeout, _ := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	writeTimeout, _ := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	shutdownTimeout, _ := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	handshakeTimeout, _ := time.ParseDuration(viper.GetString("MATCH_HANDSHAKE_TIMEOUT"))

	return &Config{
		App: AppConfig{
			Mode: viper.GetString("APP_MODE"),
		},
		Server: ServerConfig{
			Port:            viper.GetInt("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Match: MatchConfig{
			RosterPath:           viper.GetString("MATCH_ROSTER_PATH"),
			DefaultDepth:         viper.GetInt("MATCH_DEFAULT_DEPTH"),
			HandshakeTimeout:     handshakeTimeout,
			MaxConcurrentMatches: viper.GetInt("MATCH_MAX_CONCURRENT"),
		},
		RateLimit: RateLimitConfig{
			MatchStartsPerHour: viper.GetInt("RATE_LIMIT_MATCH_STARTS_PER_HOUR"),
		},
	}
}

// EngineProfile maps one engine nickname to its launch parameters: the
// binary to run, its arguments, the UCI options to apply once
// connected, and whether a configured option that cannot be applied
// should be skipped with a warning rather than abort engine
// construction. Options is raw JSON per-key because a
// UCI option's wire value may be boolean, integer, or string depending
// on the option's declared type, which isn't known until the engine's
// handshake registers it.
type EngineProfile struct {
	Path                string                     `json:"path"`
	Args                []string                   `json:"args"`
	Options             map[string]json.RawMessage `json:"options"`
	AllowInvalidOptions bool                        `json:"allow_invalid_options"`
}

// EngineRoster is the persisted collaborator spec.md describes: a
// configuration file mapping engine nicknames to launch parameters.
type EngineRoster map[string]EngineProfile

// LoadEngineRoster reads and parses the roster file at path.
func LoadEngineRoster(path string) (EngineRoster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configs: read roster %s: %w", path, err)
	}
	var roster EngineRoster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("configs: parse roster %s: %w", path, err)
	}
	return roster, nil
}