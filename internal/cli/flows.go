// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"

	"github.com/creachadair/jflat/internal/flowconf"
	"github.com/creachadair/jflat/internal/logging"
	"github.com/spf13/cobra"
)

func newFlowsCommand(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "flows FILE",
		Short: "Decode and print a flow configuration",
		Long: `Decode a flow configuration, an object with a "bind" address and an array
of "flows" each having a "name", "port", and "file", and print it as text or
YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q", format)
			}
			_, root, err := loadDocument(cmd, opts, args[0])
			if err != nil {
				return err
			}
			cfg, err := flowconf.Decode(root)
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("decoded config",
				logging.FieldPath, args[0], logging.FieldFlows, len(cfg.Flows), logging.FieldFormat, format)

			if format == "yaml" {
				return cfg.WriteYAML(cmd.OutOrStdout())
			}
			return cfg.WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}
