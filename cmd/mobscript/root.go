// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/config"
	"github.com/Espyo/Pikifen-sub018/internal/content"
	"github.com/Espyo/Pikifen-sub018/internal/logging"
	"github.com/Espyo/Pikifen-sub018/internal/mob/luacode"
	"github.com/Espyo/Pikifen-sub018/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the mob script tool.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mobscript",
		Short: "Check, inspect and run mob behavior scripts",
		Long: `mobscript loads mob type definitions, compiles their event scripts
and runs them against a small simulated world.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/pikifen/mobscript.yaml)")
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInstructionsCmd())
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// env is what every command needs after reading its configuration.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	loader *content.Loader
}

// setup reads the configuration, installs the logger and builds a loader.
// An explicit --config must exist; the default path may be absent.
func setup(cmd *cobra.Command) (*env, error) {
	path, required := configFile, true
	if path == "" {
		required = false
		if p, err := xdg.ConfigFile(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path, required, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup("mobscript", version, cfg.Log.Format, level, cmd.ErrOrStderr())

	host := luacode.NewHost(luacode.WithTimeout(cfg.Lua.Timeout), luacode.WithLogger(logger))
	loader := content.NewLoader(content.WithLuaHost(host), content.WithLogger(logger))
	return &env{cfg: cfg, logger: logger, loader: loader}, nil
}
