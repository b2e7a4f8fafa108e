// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jflat inspects JSON documents through a flat token array.
package main

import (
	"os"

	"github.com/creachadair/jflat/internal/cli"
	"github.com/creachadair/jflat/internal/logging"
)

// Set by the linker at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		os.Exit(1)
	}
}
