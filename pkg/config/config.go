// Package config loads the application configuration from layered
// sources: defaults, an optional TOML file, environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the route planner.
type Config struct {
	Network     string `koanf:"network"` // path to a JSON network file; empty = built-in baseline
	From        string `koanf:"from"`    // one-shot query source (CLI mode)
	To          string `koanf:"to"`      // one-shot query destination (CLI mode)
	WebMode     bool   `koanf:"web"`
	Port        int    `koanf:"port"`
	Watch       bool   `koanf:"watch"` // reload the network file on change
	OpenBrowser bool   `koanf:"open"`
	HistorySize int    `koanf:"history-size"`
	Verbosity   string `koanf:"verbosity"`
}

// Load builds the configuration.
// Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"network":      "",
		"from":         "",
		"to":           "",
		"web":          false,
		"port":         8080,
		"watch":        false,
		"open":         true,
		"history-size": 10,
		"verbosity":    "",
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional) - route-planner.toml
	// Missing file is fine; ignore the error.
	_ = k.Load(file.Provider("route-planner.toml"), toml.Parser())

	// 3. Environment variables, prefix ROUTE_PLANNER_
	// (e.g. ROUTE_PLANNER_PORT=9090)
	if err := k.Load(env.Provider("ROUTE_PLANNER_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "ROUTE_PLANNER_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
