// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"fmt"
	"io"

	"github.com/jakecoffman/cp"
	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

type runOptions struct {
	ticks   int
	dt      float64
	seed    int64
	x, y    float64
	message []string
	damage  float64
}

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <type>",
		Short: "Spawn a mob and run its scripts in a small world",
		Long: `Load the content directory, spawn one mob of the named type and
advance the world tick by tick. Every message, sound, state change and
print is written as it happens. --message and --damage send events to
the mob right after it spawns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			types, err := e.loader.LoadDir(cmd.Context(), e.cfg.Content.Dir, e.cfg.Content.Patterns)
			if err != nil {
				report(cmd.ErrOrStderr(), err)
			}

			interp := mobscript.NewInterpreter(
				mobscript.WithStepLimit(e.cfg.Interpreter.StepLimit),
				mobscript.WithLogger(e.logger),
			)
			out := cmd.OutOrStdout()
			feed := mob.NewFeed()
			w := mob.NewWorld(
				mob.WithInterpreter(interp),
				mob.WithWorldLogger(e.logger),
				mob.WithSeed(opts.seed),
				mob.WithFeed(feed),
				mob.WithRecordLimit(0),
			)
			cancel := feed.Handle(func(rec mob.Record) {
				writeRecord(out, w.Time, rec)
			})
			defer cancel()
			for _, t := range types {
				w.AddType(t)
			}

			t, ok := w.Types[args[0]]
			if !ok {
				return fmt.Errorf("mob type %q is not loaded from %s", args[0], e.cfg.Content.Dir)
			}

			m := w.Spawn(t, cp.Vector{X: opts.x, Y: opts.y}, 0)

			for _, msg := range opts.message {
				w.SendMessage(nil, m, msg)
			}
			if opts.damage > 0 {
				w.Damage(m, mob.HitInfo{Damage: opts.damage})
			}
			w.Dispatch()

			for i := 0; i < opts.ticks; i++ {
				w.Tick(opts.dt)
			}

			fmt.Fprintf(out, "final state %s, health %g, alive %t\n", m.State, m.Health, m.Alive())
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.ticks, "ticks", 10, "number of ticks to simulate")
	cmd.Flags().Float64Var(&opts.dt, "dt", 0.1, "seconds per tick")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "spawn x")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "spawn y")
	cmd.Flags().StringArrayVar(&opts.message, "message", nil, "send a message to the mob after it spawns (repeatable)")
	cmd.Flags().Float64Var(&opts.damage, "damage", 0, "damage the mob after it spawns")
	return cmd
}

func writeRecord(out io.Writer, now float64, rec mob.Record) {
	name := "-"
	if rec.Mob != nil {
		name = rec.Mob.Type.Name
	}
	fmt.Fprintf(out, "%7.2f %-12s %-9s %s\n", now, name, rec.Kind, rec.Text)
}
