// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/mob/actions"
)

// NewInstructionsCmd creates the instructions subcommand.
func NewInstructionsCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "List the script instructions and their arguments",
		Long: `List every instruction a script may use, with its argument signature
and a short description. --match filters names with a glob such as
"set_*" or "*focus*".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := glob.Compile(match)
			if err != nil {
				return fmt.Errorf("invalid --match pattern %q: %w", match, err)
			}

			kinds := actions.NewRegistry().All()
			sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })

			out := cmd.OutOrStdout()
			n := 0
			for _, k := range kinds {
				if !g.Match(k.Name) {
					continue
				}
				fmt.Fprintln(out, k.Usage())
				if k.Help != "" {
					fmt.Fprintf(out, "    %s\n", k.Help)
				}
				n++
			}
			if n == 0 {
				return fmt.Errorf("no instruction matches %q", match)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "*", "glob filter on instruction names")
	return cmd
}
