// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/content"
)

// NewSchemaCmd creates the schema subcommand.
func NewSchemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for YAML mob type files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := content.GenerateSchema()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
				return err
			}
			if err := os.WriteFile(out, schema, 0o600); err != nil {
				return fmt.Errorf("failed to write schema: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the schema to a file instead of stdout")
	return cmd
}
