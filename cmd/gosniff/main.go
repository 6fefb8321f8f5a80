// Package main is the entry point for the gosniff CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gosniff/internal/cli"
	"github.com/yaklabco/gosniff/internal/logging"

	// Import sniffs package to register built-in sniffs via init().
	_ "github.com/yaklabco/gosniff/pkg/sniff/sniffs"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrIssuesFound only carries the exit code; the report already said why.
		if !errors.Is(err, cli.ErrIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return 0
}
