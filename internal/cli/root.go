// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cli provides the cobra command tree for the jflat tool.
package cli

import (
	"errors"
	"fmt"

	"github.com/creachadair/jflat"
	"github.com/creachadair/jflat/internal/logging"
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options are the settings shared by all subcommands.
type options struct {
	debug bool
	jwcc  bool
}

// NewRootCommand creates the root jflat command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "jflat",
		Short: "Inspect JSON documents through a flat token array",
		Long: `jflat tokenizes JSON documents into a flat array of tokens and
navigates them without building a tree.

Use "tokens" to dump the token array of a file, "get" to print the value at
a path, and "flows" to decode a flow configuration.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if opts.debug {
				level = "debug"
			}
			lg := logging.NewWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), lg))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.jwcc, "jwcc", false, "accept comments and trailing commas")

	root.AddCommand(newTokensCommand(&opts))
	root.AddCommand(newGetCommand(&opts))
	root.AddCommand(newFlowsCommand(&opts))
	root.AddCommand(newVersionCommand(info))
	return root
}

// loadDocument loads and parses the named file according to opts.
func loadDocument(cmd *cobra.Command, opts *options, path string) (*jflat.Document, jflat.Element, error) {
	lg := logging.FromContext(cmd.Context())

	d := jflat.NewDocument()
	d.SetLogger(lg)
	d.AllowJWCC(opts.jwcc)
	if err := d.Load(path); err != nil {
		return nil, jflat.Element{}, err
	}
	root := d.Parse()
	if !root.IsValid() {
		err := d.Err()
		if err == nil {
			err = errors.New("empty document")
		}
		lg.Debug("parse failed", logging.FieldPath, path, logging.FieldError, err)
		return nil, jflat.Element{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, root, nil
}
