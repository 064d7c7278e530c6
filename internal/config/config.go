// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package config loads tool settings from defaults, an optional YAML file
// and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/Espyo/Pikifen-sub018/internal/content"
	"github.com/Espyo/Pikifen-sub018/internal/mob/luacode"
)

// Config is the full tool configuration.
type Config struct {
	Log         LogConfig         `koanf:"log"`
	Content     ContentConfig     `koanf:"content"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Interpreter InterpreterConfig `koanf:"interpreter"`
	Lua         LuaConfig         `koanf:"lua"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ContentConfig says where mob types live.
type ContentConfig struct {
	Dir      string        `koanf:"dir"`
	Patterns []string      `koanf:"patterns"`
	Debounce time.Duration `koanf:"debounce"`
}

// MetricsConfig configures the observability server. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// InterpreterConfig tunes script execution.
type InterpreterConfig struct {
	StepLimit int `koanf:"step_limit"`
}

// LuaConfig tunes custom code.
type LuaConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Content: ContentConfig{Dir: ".", Patterns: append([]string(nil), content.DefaultPatterns...), Debounce: content.DefaultDebounce},
		Metrics: MetricsConfig{},
		Lua:     LuaConfig{Timeout: luacode.DefaultTimeout},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"dir":         "content.dir",
	"pattern":     "content.patterns",
	"debounce":    "content.debounce",
	"metrics":     "metrics.addr",
	"step-limit":  "interpreter.step_limit",
	"lua-timeout": "lua.timeout",
}

// BindFlags registers the config flags on fs with the defaults as values.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-format", d.Log.Format, "log format (text, json)")
	fs.String("dir", d.Content.Dir, "content directory")
	fs.StringSlice("pattern", d.Content.Patterns, "glob patterns of content files, relative to --dir")
	fs.Duration("debounce", d.Content.Debounce, "settle delay before reloading changed content")
	fs.String("metrics", d.Metrics.Addr, "metrics and health listen address, empty to disable")
	fs.Int("step-limit", d.Interpreter.StepLimit, "maximum instructions per program run, 0 for no limit")
	fs.Duration("lua-timeout", d.Lua.Timeout, "time limit for one custom code run")
}

// Load builds the configuration. path may be empty; a missing file is an
// error only when required is set. Only flags the user changed override
// the file.
func Load(path string, required bool, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obviously wrong values.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}
	if c.Content.Debounce < 0 {
		return fmt.Errorf("content.debounce must not be negative")
	}
	if c.Interpreter.StepLimit < 0 {
		return fmt.Errorf("interpreter.step_limit must not be negative")
	}
	if c.Lua.Timeout <= 0 {
		return fmt.Errorf("lua.timeout must be positive")
	}
	return nil
}
