// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/content"
	"github.com/Espyo/Pikifen-sub018/internal/mob"
)

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path...]",
		Short: "Compile mob types and report script errors",
		Long: `Compile every mob type under the given files or directories, or under
the configured content directory when none are given, and report each
script error with its file, state, event and line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{e.cfg.Content.Dir}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				types, err := loadPath(cmd, e, path)
				for _, t := range types {
					fmt.Fprintf(out, "ok   %s (%d states)\n", t.Name, len(t.States))
				}
				failed += report(out, err)
			}
			if failed > 0 {
				return fmt.Errorf("%d definition(s) failed to load", failed)
			}
			return nil
		},
	}
}

func loadPath(cmd *cobra.Command, e *env, path string) ([]*mob.Type, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return e.loader.LoadDir(cmd.Context(), path, e.cfg.Content.Patterns)
	}
	t, err := e.loader.LoadFile(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return []*mob.Type{t}, nil
}

// report prints each error joined into err and returns how many there were.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += report(w, e)
		}
		return n
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && pathErr.Op == "stat" {
		fmt.Fprintf(w, "FAIL %s: no such file or directory\n", pathErr.Path)
		return 1
	}
	fmt.Fprintf(w, "FAIL %s\n", content.Describe(err))
	return 1
}
